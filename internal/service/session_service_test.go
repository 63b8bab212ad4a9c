package service_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/minhlq/skillsession/internal/dto"
	"github.com/minhlq/skillsession/internal/model"
	"github.com/minhlq/skillsession/internal/repository"
	"github.com/minhlq/skillsession/internal/service"
	. "github.com/smartystreets/goconvey/convey"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// recordingDispatcher captures evaluation jobs instead of running them, so
// submission tests stay deterministic.
type recordingDispatcher struct {
	jobs []service.EvaluationJob
}

func (d *recordingDispatcher) Enqueue(job service.EvaluationJob) { d.jobs = append(d.jobs, job) }
func (d *recordingDispatcher) Start()                            {}
func (d *recordingDispatcher) Stop()                             {}

type testEnv struct {
	db         *gorm.DB
	sessions   repository.SessionRepository
	questions  repository.QuestionRepository
	order      repository.SessionQuestionRepository
	responses  repository.ResponseRepository
	events     repository.EventRepository
	dispatcher *recordingDispatcher
	engine     service.SessionService
	results    service.ResultService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access test database: %v", err)
	}
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Domain{},
		&model.Question{},
		&model.Session{},
		&model.SessionQuestion{},
		&model.Response{},
		&model.SessionEvent{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	env := &testEnv{
		db:         db,
		sessions:   repository.NewSessionRepository(db),
		questions:  repository.NewQuestionRepository(db),
		order:      repository.NewSessionQuestionRepository(db),
		responses:  repository.NewResponseRepository(db),
		events:     repository.NewEventRepository(db),
		dispatcher: &recordingDispatcher{},
	}
	env.engine = service.NewSessionService(env.sessions, env.questions, env.order, env.responses, env.events, env.dispatcher)
	env.results = service.NewResultService(env.sessions, env.order, env.responses)
	return env
}

func (e *testEnv) seedMCQ(t *testing.T, n int, testType, difficulty string, domainID *uint) {
	t.Helper()
	correct := "B"
	for i := 0; i < n; i++ {
		q := model.Question{
			Text:          fmt.Sprintf("%s question %d", testType, i),
			Format:        model.QuestionFormatMCQ,
			Options:       []string{"A", "B", "C", "D"},
			CorrectOption: &correct,
			TestType:      testType,
			Difficulty:    difficulty,
			DomainID:      domainID,
		}
		if err := e.questions.Create(&q); err != nil {
			t.Fatalf("failed to seed question: %v", err)
		}
	}
}

func (e *testEnv) seedDescriptive(t *testing.T, n int, testType, difficulty string, domainID *uint) {
	t.Helper()
	for i := 0; i < n; i++ {
		q := model.Question{
			Text:       fmt.Sprintf("describe %s %d", testType, i),
			Format:     model.QuestionFormatDescriptive,
			TestType:   testType,
			Difficulty: difficulty,
			DomainID:   domainID,
		}
		if err := e.questions.Create(&q); err != nil {
			t.Fatalf("failed to seed question: %v", err)
		}
	}
}

// orderedQuestionIDs returns the session's question ids in order index order.
func (e *testEnv) orderedQuestionIDs(t *testing.T, sessionID uint) []uint {
	t.Helper()
	rows, err := e.order.FindBySessionOrdered(sessionID)
	if err != nil {
		t.Fatalf("failed to load question order: %v", err)
	}
	ids := make([]uint, len(rows))
	for i, row := range rows {
		ids[i] = row.QuestionID
	}
	return ids
}

func TestStartSession(t *testing.T) {
	Convey("Given a question bank with matching aptitude questions", t, func() {
		env := newTestEnv(t)
		env.seedMCQ(t, 3, model.TestTypeAptitude, "EASY", nil)

		Convey("When a session is started", func() {
			sessionID, err := env.engine.StartSession(dto.StartSessionRequest{
				UserID:     1,
				TestType:   model.TestTypeAptitude,
				Difficulty: "EASY",
			})

			Convey("Then it succeeds with a fixed contiguous question order", func() {
				So(err, ShouldBeNil)
				So(sessionID, ShouldBeGreaterThan, 0)

				rows, err := env.order.FindBySessionOrdered(sessionID)
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 3)
				for i, row := range rows {
					So(row.OrderIndex, ShouldEqual, i)
				}
			})

			Convey("And the session starts ACTIVE at index zero", func() {
				So(err, ShouldBeNil)
				session, err := env.sessions.FindByID(sessionID)
				So(err, ShouldBeNil)
				So(session.Status, ShouldEqual, model.SessionStatusActive)
				So(session.CurrentIndex, ShouldEqual, 0)
				So(session.TimeLimit, ShouldEqual, model.DefaultTimeLimitSeconds)
			})

			Convey("And a started event is appended", func() {
				So(err, ShouldBeNil)
				events, err := env.events.FindBySession(sessionID)
				So(err, ShouldBeNil)
				So(events, ShouldHaveLength, 1)
				So(events[0].EventType, ShouldEqual, model.EventTypeStarted)
			})
		})
	})

	Convey("Given more matching questions than the sample cap", t, func() {
		env := newTestEnv(t)
		env.seedMCQ(t, 15, model.TestTypeCoding, "HARD", nil)

		Convey("When a session is started", func() {
			sessionID, err := env.engine.StartSession(dto.StartSessionRequest{
				UserID:     1,
				TestType:   model.TestTypeCoding,
				Difficulty: "HARD",
			})

			Convey("Then at most ten questions are sampled", func() {
				So(err, ShouldBeNil)
				count, err := env.order.CountBySession(sessionID)
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 10)
			})
		})
	})

	Convey("Given domain-scoped questions under two domains", t, func() {
		env := newTestEnv(t)
		domainA := model.Domain{Name: "Databases"}
		domainB := model.Domain{Name: "Networking"}
		So(env.db.Create(&domainA).Error, ShouldBeNil)
		So(env.db.Create(&domainB).Error, ShouldBeNil)
		env.seedMCQ(t, 4, "DOMAIN_KNOWLEDGE", "MEDIUM", &domainA.ID)
		env.seedMCQ(t, 4, "DOMAIN_KNOWLEDGE", "MEDIUM", &domainB.ID)

		Convey("When a session is started for one domain", func() {
			sessionID, err := env.engine.StartSession(dto.StartSessionRequest{
				UserID:     1,
				DomainID:   &domainA.ID,
				TestType:   "DOMAIN_KNOWLEDGE",
				Difficulty: "MEDIUM",
			})

			Convey("Then only that domain's questions are sampled", func() {
				So(err, ShouldBeNil)
				for _, id := range env.orderedQuestionIDs(t, sessionID) {
					q, err := env.questions.FindByID(id)
					So(err, ShouldBeNil)
					So(*q.DomainID, ShouldEqual, domainA.ID)
				}
			})
		})
	})

	Convey("Given an aptitude bank with no domain assignment", t, func() {
		env := newTestEnv(t)
		env.seedMCQ(t, 2, model.TestTypeAptitude, "EASY", nil)
		irrelevant := uint(42)

		Convey("When a session is started with a domain id anyway", func() {
			sessionID, err := env.engine.StartSession(dto.StartSessionRequest{
				UserID:     1,
				DomainID:   &irrelevant,
				TestType:   model.TestTypeAptitude,
				Difficulty: "EASY",
			})

			Convey("Then the domain is ignored for the domain-agnostic test type", func() {
				So(err, ShouldBeNil)
				count, err := env.order.CountBySession(sessionID)
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 2)
			})
		})
	})

	Convey("Given a configuration matching no questions", t, func() {
		env := newTestEnv(t)
		env.seedMCQ(t, 3, model.TestTypeAptitude, "EASY", nil)

		Convey("When a session is started with a different difficulty", func() {
			_, err := env.engine.StartSession(dto.StartSessionRequest{
				UserID:     1,
				TestType:   model.TestTypeAptitude,
				Difficulty: "IMPOSSIBLE",
			})

			Convey("Then it fails with no questions available", func() {
				So(err, ShouldEqual, service.ErrNoQuestionsAvailable)
			})

			Convey("And no order rows or events are written", func() {
				var orderCount, eventCount int64
				So(env.db.Model(&model.SessionQuestion{}).Count(&orderCount).Error, ShouldBeNil)
				So(env.db.Model(&model.SessionEvent{}).Count(&eventCount).Error, ShouldBeNil)
				So(orderCount, ShouldEqual, 0)
				So(eventCount, ShouldEqual, 0)
			})

			Convey("And the session row itself is left behind", func() {
				var sessionCount int64
				So(env.db.Model(&model.Session{}).Count(&sessionCount).Error, ShouldBeNil)
				So(sessionCount, ShouldEqual, 1)
			})
		})
	})
}

func TestGetCurrentQuestion(t *testing.T) {
	Convey("Given an active session over MCQ questions", t, func() {
		env := newTestEnv(t)
		env.seedMCQ(t, 2, model.TestTypeAptitude, "EASY", nil)
		sessionID, err := env.engine.StartSession(dto.StartSessionRequest{
			UserID: 1, TestType: model.TestTypeAptitude, Difficulty: "EASY",
		})
		So(err, ShouldBeNil)

		Convey("When the current question is requested", func() {
			current, err := env.engine.GetCurrentQuestion(sessionID)

			Convey("Then the first question is served with its options", func() {
				So(err, ShouldBeNil)
				So(current.Completed, ShouldBeFalse)
				So(current.QuestionIndex, ShouldEqual, 0)
				So(current.Question.Format, ShouldEqual, model.QuestionFormatMCQ)
				So(current.Question.Options, ShouldResemble, []string{"A", "B", "C", "D"})
				So(current.Question.ID, ShouldEqual, env.orderedQuestionIDs(t, sessionID)[0])
			})
		})

		Convey("When the index has run past the order while still ACTIVE", func() {
			advanced, err := env.sessions.AdvanceIndex(sessionID, 0)
			So(err, ShouldBeNil)
			So(advanced, ShouldBeTrue)
			advanced, err = env.sessions.AdvanceIndex(sessionID, 1)
			So(err, ShouldBeNil)
			So(advanced, ShouldBeTrue)

			current, err := env.engine.GetCurrentQuestion(sessionID)

			Convey("Then a completion marker is returned", func() {
				So(err, ShouldBeNil)
				So(current.Completed, ShouldBeTrue)
				So(current.Question, ShouldBeNil)
			})
		})
	})

	Convey("Given an active session over a descriptive question", t, func() {
		env := newTestEnv(t)
		env.seedDescriptive(t, 1, model.TestTypeCoding, "HARD", nil)
		sessionID, err := env.engine.StartSession(dto.StartSessionRequest{
			UserID: 1, TestType: model.TestTypeCoding, Difficulty: "HARD",
		})
		So(err, ShouldBeNil)

		Convey("When the current question is requested", func() {
			current, err := env.engine.GetCurrentQuestion(sessionID)

			Convey("Then it carries no options", func() {
				So(err, ShouldBeNil)
				So(current.Question.Format, ShouldEqual, model.QuestionFormatDescriptive)
				So(current.Question.Options, ShouldBeNil)
			})
		})
	})

	Convey("Given no such session", t, func() {
		env := newTestEnv(t)

		Convey("When the current question is requested", func() {
			_, err := env.engine.GetCurrentQuestion(99)

			Convey("Then it fails with session not found", func() {
				So(err, ShouldEqual, service.ErrSessionNotFound)
			})
		})
	})

	Convey("Given a completed session", t, func() {
		env := newTestEnv(t)
		env.seedMCQ(t, 1, model.TestTypeAptitude, "EASY", nil)
		sessionID, err := env.engine.StartSession(dto.StartSessionRequest{
			UserID: 1, TestType: model.TestTypeAptitude, Difficulty: "EASY",
		})
		So(err, ShouldBeNil)
		questionID := env.orderedQuestionIDs(t, sessionID)[0]
		_, err = env.engine.SubmitAnswer(dto.SubmitAnswerRequest{
			SessionID: sessionID, QuestionID: questionID, Answer: "B",
		})
		So(err, ShouldBeNil)

		Convey("When the current question is requested", func() {
			_, err := env.engine.GetCurrentQuestion(sessionID)

			Convey("Then it fails with session not active", func() {
				So(err, ShouldEqual, service.ErrSessionNotActive)
			})
		})
	})
}

func TestSubmitAnswer(t *testing.T) {
	Convey("Given an active session over three MCQ questions", t, func() {
		env := newTestEnv(t)
		env.seedMCQ(t, 3, model.TestTypeAptitude, "EASY", nil)
		sessionID, err := env.engine.StartSession(dto.StartSessionRequest{
			UserID: 1, TestType: model.TestTypeAptitude, Difficulty: "EASY",
		})
		So(err, ShouldBeNil)
		ids := env.orderedQuestionIDs(t, sessionID)

		Convey("When the correct option is submitted for the current question", func() {
			outcome, err := env.engine.SubmitAnswer(dto.SubmitAnswerRequest{
				SessionID: sessionID, QuestionID: ids[0], Answer: "B",
			})

			Convey("Then it scores one, synchronously", func() {
				So(err, ShouldBeNil)
				responses, err := env.responses.FindBySession(sessionID)
				So(err, ShouldBeNil)
				So(responses, ShouldHaveLength, 1)
				So(responses[0].Score, ShouldNotBeNil)
				So(*responses[0].Score, ShouldEqual, 1)
				So(responses[0].EvaluationStatus, ShouldEqual, model.EvaluationStatusCompleted)
			})

			Convey("And the next question is returned and the index advanced", func() {
				So(err, ShouldBeNil)
				So(outcome.Completed, ShouldBeFalse)
				So(outcome.NextQuestionIndex, ShouldEqual, 1)
				So(outcome.NextQuestion.ID, ShouldEqual, ids[1])

				session, err := env.sessions.FindByID(sessionID)
				So(err, ShouldBeNil)
				So(session.CurrentIndex, ShouldEqual, 1)
			})

			Convey("And a submitted event identifies the question", func() {
				So(err, ShouldBeNil)
				events, err := env.events.FindBySession(sessionID)
				So(err, ShouldBeNil)
				So(events, ShouldHaveLength, 2)
				So(events[1].EventType, ShouldEqual, model.EventTypeSubmitted)
				So(events[1].Metadata["questionId"], ShouldNotBeNil)
			})
		})

		Convey("When a wrong option is submitted", func() {
			_, err := env.engine.SubmitAnswer(dto.SubmitAnswerRequest{
				SessionID: sessionID, QuestionID: ids[0], Answer: "C",
			})

			Convey("Then it scores zero", func() {
				So(err, ShouldBeNil)
				responses, err := env.responses.FindBySession(sessionID)
				So(err, ShouldBeNil)
				So(*responses[0].Score, ShouldEqual, 0)
				So(responses[0].EvaluationStatus, ShouldEqual, model.EvaluationStatusCompleted)
			})
		})

		Convey("When a later question is submitted out of order", func() {
			_, err := env.engine.SubmitAnswer(dto.SubmitAnswerRequest{
				SessionID: sessionID, QuestionID: ids[1], Answer: "B",
			})

			Convey("Then it fails and leaves no trace", func() {
				So(err, ShouldEqual, service.ErrInvalidQuestionOrder)

				responses, err := env.responses.FindBySession(sessionID)
				So(err, ShouldBeNil)
				So(responses, ShouldBeEmpty)

				session, err := env.sessions.FindByID(sessionID)
				So(err, ShouldBeNil)
				So(session.CurrentIndex, ShouldEqual, 0)
			})
		})

		Convey("When a question outside the session is submitted", func() {
			_, err := env.engine.SubmitAnswer(dto.SubmitAnswerRequest{
				SessionID: sessionID, QuestionID: 9999, Answer: "B",
			})

			Convey("Then it fails with an order violation", func() {
				So(err, ShouldEqual, service.ErrInvalidQuestionOrder)
			})
		})

		Convey("When all questions are answered in order", func() {
			for i, id := range ids {
				outcome, err := env.engine.SubmitAnswer(dto.SubmitAnswerRequest{
					SessionID: sessionID, QuestionID: id, Answer: "B",
				})
				So(err, ShouldBeNil)
				So(outcome.Completed, ShouldEqual, i == len(ids)-1)
			}

			Convey("Then the session is finalized", func() {
				session, err := env.sessions.FindByID(sessionID)
				So(err, ShouldBeNil)
				So(session.Status, ShouldEqual, model.SessionStatusCompleted)
				So(session.CurrentIndex, ShouldEqual, 3)
				So(session.EndedAt, ShouldNotBeNil)
			})

			Convey("And the event log holds the full lifecycle", func() {
				events, err := env.events.FindBySession(sessionID)
				So(err, ShouldBeNil)
				So(events, ShouldHaveLength, 5)
				So(events[0].EventType, ShouldEqual, model.EventTypeStarted)
				So(events[4].EventType, ShouldEqual, model.EventTypeCompleted)
			})

			Convey("And the result reflects a fully answered session", func() {
				result, err := env.results.GetSessionResult(sessionID)
				So(err, ShouldBeNil)
				So(result.TotalQuestions, ShouldEqual, 3)
				So(result.Answered, ShouldEqual, 3)
				So(result.AverageScore, ShouldNotBeNil)
				So(*result.AverageScore, ShouldEqual, 1)
			})

			Convey("And further submissions are rejected", func() {
				_, err := env.engine.SubmitAnswer(dto.SubmitAnswerRequest{
					SessionID: sessionID, QuestionID: ids[0], Answer: "B",
				})
				So(err, ShouldEqual, service.ErrSessionNotActive)
			})
		})
	})

	Convey("Given an active session over a descriptive question", t, func() {
		env := newTestEnv(t)
		env.seedDescriptive(t, 2, model.TestTypeCoding, "MEDIUM", nil)
		sessionID, err := env.engine.StartSession(dto.StartSessionRequest{
			UserID: 7, TestType: model.TestTypeCoding, Difficulty: "MEDIUM",
		})
		So(err, ShouldBeNil)
		ids := env.orderedQuestionIDs(t, sessionID)

		Convey("When an answer is submitted", func() {
			_, err := env.engine.SubmitAnswer(dto.SubmitAnswerRequest{
				SessionID: sessionID, QuestionID: ids[0], Answer: "my long answer",
			})

			Convey("Then the response is stored unscored and pending", func() {
				So(err, ShouldBeNil)
				responses, err := env.responses.FindBySession(sessionID)
				So(err, ShouldBeNil)
				So(responses, ShouldHaveLength, 1)
				So(responses[0].Score, ShouldBeNil)
				So(responses[0].Feedback, ShouldBeNil)
				So(responses[0].EvaluationStatus, ShouldEqual, model.EvaluationStatusPending)
			})

			Convey("And an evaluation job is dispatched for it", func() {
				So(err, ShouldBeNil)
				So(env.dispatcher.jobs, ShouldHaveLength, 1)
				job := env.dispatcher.jobs[0]
				responses, _ := env.responses.FindBySession(sessionID)
				So(job.ResponseID, ShouldEqual, responses[0].ID)
				So(job.Request.Answer, ShouldEqual, "my long answer")
				So(job.Request.TestType, ShouldEqual, model.TestTypeCoding)
				So(job.Request.Difficulty, ShouldEqual, "MEDIUM")
			})
		})
	})
}

func TestAdvanceIndexIsConditional(t *testing.T) {
	Convey("Given an active session", t, func() {
		env := newTestEnv(t)
		env.seedMCQ(t, 2, model.TestTypeAptitude, "EASY", nil)
		sessionID, err := env.engine.StartSession(dto.StartSessionRequest{
			UserID: 1, TestType: model.TestTypeAptitude, Difficulty: "EASY",
		})
		So(err, ShouldBeNil)

		Convey("When two advances race from the same index", func() {
			first, err := env.sessions.AdvanceIndex(sessionID, 0)
			So(err, ShouldBeNil)
			second, err := env.sessions.AdvanceIndex(sessionID, 0)
			So(err, ShouldBeNil)

			Convey("Then only one wins", func() {
				So(first, ShouldBeTrue)
				So(second, ShouldBeFalse)

				session, err := env.sessions.FindByID(sessionID)
				So(err, ShouldBeNil)
				So(session.CurrentIndex, ShouldEqual, 1)
			})
		})

		Convey("When the session is no longer ACTIVE", func() {
			So(env.sessions.Complete(sessionID, time.Now()), ShouldBeNil)
			advanced, err := env.sessions.AdvanceIndex(sessionID, 0)

			Convey("Then the advance is refused", func() {
				So(err, ShouldBeNil)
				So(advanced, ShouldBeFalse)
			})
		})
	})
}
