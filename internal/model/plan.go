package model

// TrainingPlanItem is one generated session, relative to a plan start date.
type TrainingPlanItem struct {
	DayOffset       int              `json:"dayOffset"`
	Type            string           `json:"type"`
	TargetDist      float64          `json:"targetDist"`
	TargetPace      string           `json:"targetPace"`
	Note            string           `json:"note"`
	IntervalDetails *IntervalDetails `json:"intervalDetails"`
}
