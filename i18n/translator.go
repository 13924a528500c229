package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "invalid_enum":
			return "許可されていない値です"
		case "required":
			return "必須プロパティが不足しています"
		case "unknown_key":
			return "未知のキーです"
		case "forbidden":
			return "条件を満たしていません"
		case "transform":
			return "変換に失敗しました"
		case "union_exhausted":
			return "どのメンバーにも一致しません"
		case "discriminator_missing":
			return "識別キーが不足しています"
		case "discriminator_unknown":
			return "未知のバリアントです"
		case "duplicate_key":
			return "キーが重複しています"
		case "too_small":
			return "小さすぎます"
		case "too_big":
			return "大きすぎます"
		case "too_short":
			return "短すぎます"
		case "too_long":
			return "長すぎます"
		case "pattern":
			return "パターンに一致しません"
		case "invalid_format":
			return "形式が不正です"
		case "parse_error":
			return "解析エラー"
		case "truncated":
			return "打ち切られました"
		case "cancelled":
			return "キャンセルされました"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "invalid_enum":
			return "value not allowed"
		case "required":
			return "required property missing"
		case "unknown_key":
			return "unknown key"
		case "forbidden":
			return "refinement failed"
		case "transform":
			return "transform failed"
		case "union_exhausted":
			return "no union member matched"
		case "discriminator_missing":
			return "discriminator missing"
		case "discriminator_unknown":
			return "unknown variant"
		case "duplicate_key":
			return "duplicate key"
		case "too_small":
			return "too small"
		case "too_big":
			return "too big"
		case "too_short":
			return "too short"
		case "too_long":
			return "too long"
		case "pattern":
			return "does not match pattern"
		case "invalid_format":
			return "invalid format"
		case "parse_error":
			return "parse error"
		case "truncated":
			return "truncated"
		case "cancelled":
			return "cancelled"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
