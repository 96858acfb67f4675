package failure

// Outcome はプロトコル非依存の結果カテゴリです。
type Outcome int

const (
	OutcomeInternal Outcome = iota
	OutcomeNotFound
	OutcomeConflict
	OutcomeBadRequest
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNotFound:
		return "not_found"
	case OutcomeConflict:
		return "conflict"
	case OutcomeBadRequest:
		return "bad_request"
	default:
		return "internal_error"
	}
}

// OutcomeOf は失敗を結果カテゴリへ写像します。全ての入力に対して値を返します。
func OutcomeOf(err error) Outcome {
	switch KindOf(err) {
	case KindNotFound:
		return OutcomeNotFound
	case KindConstraintViolation:
		return OutcomeConflict
	case KindMissingParameter:
		return OutcomeBadRequest
	default:
		return OutcomeInternal
	}
}
