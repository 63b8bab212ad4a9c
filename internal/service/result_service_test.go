package service_test

import (
	"testing"
	"time"

	"github.com/minhlq/skillsession/internal/model"
	"github.com/minhlq/skillsession/internal/service"
	. "github.com/smartystreets/goconvey/convey"
)

func (e *testEnv) seedSession(t *testing.T, userID uint, startedAt time.Time, domainID *uint) uint {
	t.Helper()
	session := model.Session{
		UserID:     userID,
		DomainID:   domainID,
		TestType:   model.TestTypeCoding,
		Difficulty: "MEDIUM",
		TimeLimit:  model.DefaultTimeLimitSeconds,
		Status:     model.SessionStatusActive,
		StartedAt:  startedAt,
	}
	if err := e.sessions.Create(&session); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	return session.ID
}

func (e *testEnv) seedResponse(t *testing.T, sessionID, questionID uint, score *float64, status string) {
	t.Helper()
	response := model.Response{
		SessionID:        sessionID,
		QuestionID:       questionID,
		AnswerText:       "answer",
		Score:            score,
		EvaluationStatus: status,
	}
	if err := e.responses.Create(&response); err != nil {
		t.Fatalf("failed to seed response: %v", err)
	}
}

func TestGetSessionResult(t *testing.T) {
	Convey("Given a session with scored, pending and failed responses", t, func() {
		env := newTestEnv(t)
		sessionID := env.seedSession(t, 1, time.Now(), nil)
		for i := 0; i < 4; i++ {
			row := model.SessionQuestion{SessionID: sessionID, QuestionID: uint(i + 1), OrderIndex: i}
			So(env.db.Create(&row).Error, ShouldBeNil)
		}
		one, zero := 1.0, 0.0
		env.seedResponse(t, sessionID, 1, &one, model.EvaluationStatusCompleted)
		env.seedResponse(t, sessionID, 2, &zero, model.EvaluationStatusCompleted)
		env.seedResponse(t, sessionID, 3, nil, model.EvaluationStatusPending)

		Convey("When the result is requested", func() {
			result, err := env.results.GetSessionResult(sessionID)

			Convey("Then totals count order rows and responses", func() {
				So(err, ShouldBeNil)
				So(result.SessionID, ShouldEqual, sessionID)
				So(result.TotalQuestions, ShouldEqual, 4)
				So(result.Answered, ShouldEqual, 3)
			})

			Convey("And the average spans scored responses only", func() {
				So(err, ShouldBeNil)
				So(result.AverageScore, ShouldNotBeNil)
				So(*result.AverageScore, ShouldEqual, 0.5)
			})
		})
	})

	Convey("Given a session where every response is still pending", t, func() {
		env := newTestEnv(t)
		sessionID := env.seedSession(t, 1, time.Now(), nil)
		env.seedResponse(t, sessionID, 1, nil, model.EvaluationStatusPending)
		env.seedResponse(t, sessionID, 2, nil, model.EvaluationStatusPending)

		Convey("When the result is requested", func() {
			result, err := env.results.GetSessionResult(sessionID)

			Convey("Then the average is null, not zero", func() {
				So(err, ShouldBeNil)
				So(result.Answered, ShouldEqual, 2)
				So(result.AverageScore, ShouldBeNil)
			})
		})
	})

	Convey("Given no such session", t, func() {
		env := newTestEnv(t)

		Convey("When the result is requested", func() {
			_, err := env.results.GetSessionResult(404)

			Convey("Then it fails with session not found", func() {
				So(err, ShouldEqual, service.ErrSessionNotFound)
			})
		})
	})
}

func TestGetUserSessions(t *testing.T) {
	Convey("Given a user with several sessions across domains", t, func() {
		env := newTestEnv(t)
		domain := model.Domain{Name: "Databases"}
		So(env.db.Create(&domain).Error, ShouldBeNil)

		base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		oldID := env.seedSession(t, 5, base, nil)
		newID := env.seedSession(t, 5, base.Add(time.Hour), &domain.ID)
		env.seedSession(t, 6, base, nil)

		Convey("When the user's sessions are listed", func() {
			summaries, err := env.results.GetUserSessions(5)

			Convey("Then only that user's sessions appear, most recent first", func() {
				So(err, ShouldBeNil)
				So(summaries, ShouldHaveLength, 2)
				So(summaries[0].SessionID, ShouldEqual, newID)
				So(summaries[1].SessionID, ShouldEqual, oldID)
			})

			Convey("And domain names are resolved where present", func() {
				So(err, ShouldBeNil)
				So(summaries[0].DomainName, ShouldNotBeNil)
				So(*summaries[0].DomainName, ShouldEqual, "Databases")
				So(summaries[1].DomainName, ShouldBeNil)
			})
		})
	})

	Convey("Given a user with no sessions", t, func() {
		env := newTestEnv(t)

		Convey("When the user's sessions are listed", func() {
			summaries, err := env.results.GetUserSessions(9)

			Convey("Then an empty list comes back", func() {
				So(err, ShouldBeNil)
				So(summaries, ShouldBeEmpty)
			})
		})
	})
}
