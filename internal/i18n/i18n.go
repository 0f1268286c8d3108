package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys.
const (
	NoDateSelected        = "no_date_selected"
	InvalidDate           = "invalid_date"
	DistanceRequired      = "distance_required"
	InvalidTime           = "invalid_time"
	InvalidGoal           = "invalid_goal"
	GoalExists            = "goal_exists"
	GoalNotFound          = "goal_not_found"
	RecordExists          = "record_exists"
	ConfirmDeleteGoal     = "confirm_delete_goal"
	ConfirmDeleteRecord   = "confirm_delete_record"
	ConfirmDeleteShoe     = "confirm_delete_shoe"
	QuickRecordIncomplete = "quick_record_incomplete"
	NegativeDistance      = "negative_distance"
	ShoeLabelsRequired    = "shoe_labels_required"
	InvalidShoe           = "invalid_shoe"
	ShoeNotFound          = "shoe_not_found"
	ShoeLimitReached      = "shoe_limit_reached"
	InvalidPlan           = "invalid_plan"
	InvalidRequest        = "invalid_request"
	NoAPIKey              = "no_api_key"
	InvalidAPIKey         = "invalid_api_key"
	PlanFailed            = "plan_failed"
	BackupsDisabled       = "backups_disabled"
	TooManyRequests       = "too_many_requests"
	Internal              = "internal"
)

var supported = []language.Tag{language.Korean, language.English}

var matcher = language.NewMatcher(supported)

var catalog = map[string][2]string{
	NoDateSelected:        {"날짜를 선택해주세요.", "Select a date first."},
	InvalidDate:           {"날짜 형식이 올바르지 않습니다.", "Dates must look like 2024-03-01."},
	DistanceRequired:      {"거리를 입력해주세요.", "Enter a distance."},
	InvalidTime:           {"시간 형식이 올바르지 않습니다.", "Enter the time as minutes and seconds below 60."},
	InvalidGoal:           {"목표 값이 올바르지 않습니다.", "The goal values are not valid."},
	GoalExists:            {"이미 목표가 있는 날짜입니다.", "This date already has a goal."},
	GoalNotFound:          {"목표를 찾을 수 없습니다.", "Goal not found."},
	RecordExists:          {"이미 기록이 있는 날짜입니다.", "This date already has a record."},
	ConfirmDeleteGoal:     {"목표를 삭제하시겠습니까?", "Delete this goal?"},
	ConfirmDeleteRecord:   {"기록을 삭제하시겠습니까?", "Delete this record?"},
	ConfirmDeleteShoe:     {"이 러닝화를 삭제하시겠습니까?", "Delete this shoe?"},
	QuickRecordIncomplete: {"날짜와 거리를 입력해주세요.", "Enter a date and a distance."},
	NegativeDistance:      {"거리는 0 이상이어야 합니다.", "Distance cannot be negative."},
	ShoeLabelsRequired:    {"브랜드와 모델명을 입력해주세요.", "Enter a brand and a model name."},
	InvalidShoe:           {"러닝화 정보가 올바르지 않습니다.", "The shoe details are not valid."},
	ShoeNotFound:          {"러닝화를 찾을 수 없습니다.", "Shoe not found."},
	ShoeLimitReached:      {"러닝화는 최대 %d개까지 등록할 수 있습니다.", "You can register up to %d shoes."},
	InvalidPlan:           {"훈련 계획이 올바르지 않습니다.", "The training plan is not valid."},
	InvalidRequest:        {"요청 형식이 올바르지 않습니다.", "The request could not be read."},
	NoAPIKey:              {"API Key가 설정되지 않았습니다. 우측 상단 설정(⚙️) 버튼을 눌러 키를 등록해주세요.", "No API key is set. Add one in settings."},
	InvalidAPIKey:         {"API Key 연결에 실패했습니다.", "Could not connect with this API key."},
	PlanFailed:            {"AI 스케줄 생성 중 오류가 발생했습니다. API Key를 확인해주세요.", "The AI plan could not be generated. Check the API key."},
	BackupsDisabled:       {"백업 저장소가 설정되지 않았습니다.", "Backup storage is not configured."},
	TooManyRequests:       {"요청이 너무 많습니다. 잠시 후 다시 시도해주세요.", "Too many requests. Try again shortly."},
	Internal:              {"일시적인 오류가 발생했습니다.", "Something went wrong."},
}

func init() {
	for key, msgs := range catalog {
		_ = message.SetString(language.Korean, key, msgs[0])
		_ = message.SetString(language.English, key, msgs[1])
	}
}

// Match picks the best supported language for an Accept-Language header,
// falling back to fallback and then Korean.
func Match(acceptLanguage, fallback string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		tags = nil
	}
	if fb, err := language.Parse(fallback); err == nil {
		tags = append(tags, fb)
	}
	if len(tags) == 0 {
		return language.Korean
	}

	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return language.Korean
	}
	return supported[idx]
}

// T formats the message for key in tag.
func T(tag language.Tag, key string, args ...any) string {
	return message.NewPrinter(tag).Sprintf(key, args...)
}
