package tour

import (
	"context"
	"fmt"
	"time"

	"github.com/YuminosukeSato/primer/pkg/errors"
	"github.com/YuminosukeSato/primer/pkg/log"
)

// Lesson is one step of the walkthrough.
type Lesson struct {
	Name  string
	Title string
	// ExpectError marks a lesson whose failure is the point of the lesson:
	// the error is printed and the walkthrough goes on.
	ExpectError bool
	Run         func(ctx context.Context, s *Session) error
}

// Lessons returns the walkthrough in order.
func Lessons() []Lesson {
	return []Lesson{
		{Name: "libraries", Title: "Libraries", Run: runLibraries},
		{Name: "variables", Title: "Variables and reassignment", Run: runVariables},
		{Name: "arithmetic", Title: "Arithmetic", Run: runArithmetic},
		{Name: "comments", Title: "Comments", Run: runComments},
		{Name: "conversion", Title: "Type conversion", ExpectError: true, Run: runConversion},
		{Name: "lists", Title: "Lists", Run: runLists},
		{Name: "dataset", Title: "Loading the diabetes dataset", Run: runDataset},
		{Name: "describe", Title: "Describing the data", Run: runDescribe},
		{Name: "column", Title: "Selecting a column", Run: runColumn},
		{Name: "ols-ml", Title: "Linear regression, machine-learning style", Run: runOLSML},
		{Name: "ols-stats", Title: "Linear regression, statistics style", Run: runOLSStats},
		{Name: "plots", Title: "Plots", Run: runPlots},
		{Name: "loop", Title: "Loops", Run: runLoop},
		{Name: "conditional", Title: "Conditionals", Run: runConditional},
		{Name: "function", Title: "Functions", Run: runFunction},
	}
}

// Names returns the lesson names in walkthrough order.
func Names() []string {
	lessons := Lessons()
	names := make([]string, len(lessons))
	for i, l := range lessons {
		names[i] = l.Name
	}
	return names
}

// Select returns the named lessons in the order given, or every lesson when
// names is empty.
func Select(names ...string) ([]Lesson, error) {
	all := Lessons()
	if len(names) == 0 {
		return all, nil
	}
	byName := make(map[string]Lesson, len(all))
	for _, l := range all {
		byName[l.Name] = l
	}
	selected := make([]Lesson, 0, len(names))
	for _, n := range names {
		l, ok := byName[n]
		if !ok {
			return nil, errors.NewValidationError("lesson", "unknown lesson", n)
		}
		selected = append(selected, l)
	}
	return selected, nil
}

// Run executes the named lessons (all of them when none are named).
// A lesson that expects an error has it printed and logged at warn level;
// any other error, or a panic, stops the run.
func Run(ctx context.Context, s *Session, names ...string) error {
	lessons, err := Select(names...)
	if err != nil {
		return err
	}
	return runLessons(ctx, s, lessons)
}

func runLessons(ctx context.Context, s *Session, lessons []Lesson) error {
	for i, l := range lessons {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "walkthrough stopped before %s", l.Name)
		}

		fmt.Fprintf(s.Out, "\n== %d. %s ==\n", i+1, l.Title)
		logger := s.Logger.With(log.LessonKey, l.Name)
		start := time.Now()

		lesson := l
		err := errors.SafeExecute("lesson "+l.Name, func() error {
			return lesson.Run(ctx, s)
		})

		switch {
		case err != nil && l.ExpectError:
			fmt.Fprintf(s.Out, "error: %v\n", err)
			logger.Warn("lesson raised the error it demonstrates", err, log.ExpectedKey, true)
		case err != nil:
			logger.Error("lesson failed", err)
			return errors.Wrapf(err, "lesson %s", l.Name)
		default:
			logger.Debug("lesson finished", log.DurationMsKey, time.Since(start).Milliseconds())
		}
	}
	return nil
}
