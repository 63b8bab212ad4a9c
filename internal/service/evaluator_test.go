package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/minhlq/skillsession/internal/service"
	. "github.com/smartystreets/goconvey/convey"
)

func TestHTTPEvaluator(t *testing.T) {
	Convey("Given a responsive evaluation delegate", t, func(c C) {
		var received service.EvaluationRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.So(r.Method, ShouldEqual, http.MethodPost)
			c.So(r.URL.Path, ShouldEqual, "/evaluate")
			c.So(json.NewDecoder(r.Body).Decode(&received), ShouldBeNil)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(service.EvaluationResult{Score: 7.5, Feedback: "solid answer"})
		}))
		defer server.Close()

		evaluator := service.NewHTTPEvaluator(server.URL)

		Convey("When an answer is evaluated", func() {
			result, err := evaluator.Evaluate(context.Background(), service.EvaluationRequest{
				Question:   "Explain indexes",
				Answer:     "They speed up lookups",
				TestType:   "DOMAIN_KNOWLEDGE",
				Difficulty: "MEDIUM",
			})

			Convey("Then the delegate's verdict comes back", func() {
				So(err, ShouldBeNil)
				So(result.Score, ShouldEqual, 7.5)
				So(result.Feedback, ShouldEqual, "solid answer")
			})

			Convey("And the delegate saw the full payload", func() {
				So(err, ShouldBeNil)
				So(received.Question, ShouldEqual, "Explain indexes")
				So(received.Answer, ShouldEqual, "They speed up lookups")
				So(received.TestType, ShouldEqual, "DOMAIN_KNOWLEDGE")
				So(received.Difficulty, ShouldEqual, "MEDIUM")
			})
		})
	})

	Convey("Given a delegate that answers with an error status", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		evaluator := service.NewHTTPEvaluator(server.URL)

		Convey("When an answer is evaluated", func() {
			_, err := evaluator.Evaluate(context.Background(), service.EvaluationRequest{Answer: "x"})

			Convey("Then the evaluation fails", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "500")
			})
		})
	})

	Convey("Given a delegate returning malformed JSON", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		evaluator := service.NewHTTPEvaluator(server.URL)

		Convey("When an answer is evaluated", func() {
			_, err := evaluator.Evaluate(context.Background(), service.EvaluationRequest{Answer: "x"})

			Convey("Then decoding fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})

	Convey("Given an unreachable delegate", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		evaluator := service.NewHTTPEvaluator(server.URL)

		Convey("When an answer is evaluated", func() {
			_, err := evaluator.Evaluate(context.Background(), service.EvaluationRequest{Answer: "x"})

			Convey("Then the call fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestDisabledEvaluator(t *testing.T) {
	Convey("Given no evaluator is configured", t, func() {
		evaluator := service.NewDisabledEvaluator()

		Convey("When an answer is evaluated", func() {
			_, err := evaluator.Evaluate(context.Background(), service.EvaluationRequest{Answer: "x"})

			Convey("Then it reports the evaluator as unavailable", func() {
				So(err, ShouldEqual, service.ErrEvaluatorUnavailable)
			})
		})
	})
}
