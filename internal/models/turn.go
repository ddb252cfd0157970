package models

// 대화 턴의 화자
type Role int

const (
	RoleUser Role = iota + 1
	RoleAssistant
)

// 대화 기록 직렬화 포맷에서 사용하는 태그
func (r Role) Tag() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAssistant:
		return "assistant"
	default:
		return ""
	}
}

func (r Role) String() string {
	if tag := r.Tag(); tag != "" {
		return tag
	}
	return "unknown"
}

// 태그 -> Role, 알 수 없는 태그는 ok=false
func RoleFromTag(tag string) (Role, bool) {
	switch tag {
	case "user":
		return RoleUser, true
	case "assistant":
		return RoleAssistant, true
	default:
		return 0, false
	}
}

// 대화 한 턴 (요청 단위, 저장하지 않음)
type Turn struct {
	Role Role   `json:"-"`
	Text string `json:"text"`
}

func UserTurn(text string) Turn { return Turn{Role: RoleUser, Text: text} }
func AssistantTurn(text string) Turn { return Turn{Role: RoleAssistant, Text: text} }
