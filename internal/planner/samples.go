package planner

import (
	"time"

	"github.com/julianstephens/studyplan/internal/models"
	"github.com/julianstephens/studyplan/internal/utils"
)

func sampleEvent(id models.ID, now time.Time) models.Event {
	return models.Event{
		ID:        id,
		Title:     "Anatomy lecture",
		Category:  models.CategoryLecture,
		Date:      utils.DateKey(now),
		StartTime: "08:15",
		EndTime:   "09:45",
		Location:  "Lecture hall 1",
		Notes:     "Read chapter 5 (cardiovascular system) beforehand",
	}
}

func sampleExam(id models.ID) models.Exam {
	grade := 1.7
	percent := 87
	return models.Exam{
		ID:       id,
		Subject:  "Anatomy I",
		Date:     "2024-09-15",
		Status:   models.ExamPassed,
		Grade:    &grade,
		Percent:  &percent,
		Semester: 1,
		Attempt:  1,
	}
}
