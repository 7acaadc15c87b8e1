package quiz

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/Zhalalov2-code/online-course/core"
	"github.com/Zhalalov2-code/online-course/core/normalize"
	"github.com/Zhalalov2-code/online-course/core/user"
)

var (
	// errors
	ErrNotFound           = errors.New("test not found")
	ErrLessonNotCompleted = errors.New("the lesson of this test is not completed")
	ErrInvalidAnswer      = errors.New("answer is not one of the options")
)

// LessonProgress tells which lessons a user completed.
type LessonProgress interface {
	CompletedLessons(ctx context.Context, userID string) (map[string]bool, error)
}

type (
	Service interface {
		Tests(ctx context.Context) ([]normalize.Test, error)
		// Overview lists the tests with the user's completion and access flags.
		Overview(ctx context.Context, usr user.User) ([]TestView, error)
		Test(ctx context.Context, id string) (normalize.Test, error)
		CreateTest(ctx context.Context, nt NewTest) (normalize.Test, error)
		Submit(ctx context.Context, usr user.User, testID string, answerIndex int) (Grade, error)
		Results(ctx context.Context, userID string) ([]ResultView, error)
	}

	service struct {
		backend  core.Backend
		progress LessonProgress
		tracker  *Tracker
		log      core.Logger
	}
)

var _ Service = (*service)(nil)

func NewService(backend core.Backend, progress LessonProgress, tracker *Tracker, logger core.Logger) Service {
	return &service{backend: backend, progress: progress, tracker: tracker, log: logger}
}

func (svc *service) Tests(ctx context.Context) ([]normalize.Test, error) {
	data, err := svc.backend.Get(ctx, core.ResourceTests, nil)
	if err != nil {
		return nil, errors.Wrap(err, "fetching tests")
	}
	return normalize.Tests(data), nil
}

func (svc *service) Overview(ctx context.Context, usr user.User) ([]TestView, error) {
	tests, err := svc.Tests(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := svc.tracker.Completed(ctx, usr.ID)
	if err != nil {
		return nil, err
	}
	lessons, err := svc.completedLessons(ctx, usr)
	if err != nil {
		return nil, err
	}

	views := make([]TestView, 0, len(tests))
	for _, t := range tests {
		views = append(views, TestView{
			Test:      t,
			Completed: completed[t.ID],
			CanTake:   CanTake(usr, t, lessons),
		})
	}
	return views, nil
}

func (svc *service) Test(ctx context.Context, id string) (normalize.Test, error) {
	data, err := svc.backend.Get(ctx, core.ResourcePath(core.ResourceTests, id), nil)
	if err != nil {
		if core.IsBackendStatus(err, http.StatusNotFound) {
			return normalize.Test{}, ErrNotFound
		}
		return normalize.Test{}, errors.Wrap(err, "fetching test")
	}
	t, ok := normalize.FindTest(data, id)
	if !ok {
		return normalize.Test{}, ErrNotFound
	}
	return t, nil
}

func (svc *service) CreateTest(ctx context.Context, nt NewTest) (normalize.Test, error) {
	if err := nt.Validate(); err != nil {
		return normalize.Test{}, err
	}

	options, err := json.Marshal(nt.Options)
	if err != nil {
		return normalize.Test{}, errors.Wrap(err, "encoding options")
	}
	form := url.Values{
		"lesson_id":      {nt.LessonID},
		"question":       {nt.Question},
		"options":        {string(options)},
		"correct_answer": {strconv.Itoa(*nt.CorrectAnswer)},
	}
	data, err := svc.backend.Post(ctx, core.ResourceTests, form)
	if err != nil {
		return normalize.Test{}, errors.Wrap(err, "creating test")
	}

	created, _ := normalize.FindTest(data, "")
	return mergeCreated(created, nt), nil
}

// mergeCreated fills the fields the backend left out of its answer with the submitted ones.
func mergeCreated(t normalize.Test, nt NewTest) normalize.Test {
	if !t.LessonID.Valid {
		t.LessonID.SetValid(nt.LessonID)
	}
	if t.Question == "" || t.Question == "Test #"+t.ID {
		t.Question = nt.Question
	}
	if len(t.Options) == 0 {
		t.Options = append([]string{}, nt.Options...)
	}
	if !t.CorrectAnswerIndex.Valid {
		t.CorrectAnswerIndex.SetValid(int(*nt.CorrectAnswer))
	}
	return t
}

func (svc *service) Submit(ctx context.Context, usr user.User, testID string, answerIndex int) (Grade, error) {
	t, err := svc.Test(ctx, testID)
	if err != nil {
		return Grade{}, err
	}
	if answerIndex < 0 || answerIndex >= len(t.Options) {
		return Grade{}, ErrInvalidAnswer
	}
	lessons, err := svc.completedLessons(ctx, usr)
	if err != nil {
		return Grade{}, err
	}
	if !CanTake(usr, t, lessons) {
		return Grade{}, ErrLessonNotCompleted
	}

	grade := GradeAnswer(t, answerIndex)
	if _, err := svc.tracker.MarkCompleted(ctx, usr.ID, t.ID); err != nil {
		return Grade{}, err
	}

	isCorrect := "0"
	if grade.OK {
		isCorrect = "1"
	}
	form := url.Values{
		"user_id":     {usr.ID},
		"test_id":     {t.ID},
		"user_answer": {strconv.Itoa(answerIndex)},
		"is_correct":  {isCorrect},
	}
	if _, err := svc.backend.Post(ctx, core.ResourceResults, form); err != nil {
		return Grade{}, errors.Wrap(err, "saving result")
	}
	return grade, nil
}

func (svc *service) Results(ctx context.Context, userID string) ([]ResultView, error) {
	if userID == "" {
		return []ResultView{}, nil
	}

	var (
		results []normalize.Result
		tests   []normalize.Test
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := svc.backend.Get(gctx, core.ResourceResults, url.Values{"user_id": {userID}})
		if err != nil {
			return errors.Wrap(err, "fetching results")
		}
		results = normalize.Results(data)
		return nil
	})
	g.Go(func() error {
		data, err := svc.backend.Get(gctx, core.ResourceTests, nil)
		if err != nil {
			return errors.Wrap(err, "fetching tests")
		}
		tests = normalize.Tests(data)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// the backend may ignore the user_id filter
	own := results[:0]
	for _, r := range results {
		if !r.UserID.Valid || r.UserID.String == userID {
			own = append(own, r)
		}
	}
	if _, err := svc.tracker.MergeCorrect(ctx, userID, own); err != nil {
		svc.log.Warn("merging completed tests", err, map[string]interface{}{"user_id": userID})
	}

	byID := make(map[string]normalize.Test, len(tests))
	for _, t := range tests {
		if _, ok := byID[t.ID]; !ok {
			byID[t.ID] = t
		}
	}
	views := make([]ResultView, 0, len(own))
	for _, r := range own {
		views = append(views, newResultView(r, byID))
	}
	return views, nil
}

func (svc *service) completedLessons(ctx context.Context, usr user.User) (map[string]bool, error) {
	if usr.IsTeacher() || usr.IsGuest() {
		return map[string]bool{}, nil
	}
	lessons, err := svc.progress.CompletedLessons(ctx, usr.ID)
	if err != nil {
		return nil, errors.Wrap(err, "fetching lesson progress")
	}
	return lessons, nil
}
