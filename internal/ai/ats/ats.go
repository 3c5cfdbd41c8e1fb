// Package ats scores a resume against a job's required skills using a hosted
// chat-completion model. Model output is untrusted: it is scanned for a JSON
// object, validated against a schema and normalised before it is returned.
package ats

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	ErrValidation              = errors.New("validation error")
	ErrAnalysisFailed          = errors.New("analysis failed")
	ErrInvalidAIResponseFormat = errors.New("invalid AI response format")
)

type Input struct {
	FileName       string   `json:"fileName" validate:"required,max=255"`
	JobTitle       string   `json:"jobTitle" validate:"required,max=100"`
	RequiredSkills []string `json:"requiredSkills" validate:"required,min=1,max=50,dive,required,max=100"`
}

type Result struct {
	ATSScore        int      `json:"atsScore"`
	ExtractedSkills []string `json:"extractedSkills"`
	MatchedSkills   []string `json:"matchedSkills"`
	MissingSkills   []string `json:"missingSkills"`
	Suggestions     string   `json:"suggestions"`
}

// ValidationError lists the offending fields. It matches ErrValidation with
// errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Completer sends one system + user message pair to a model and returns the
// raw text of the first answer.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

type Analyzer struct {
	completer Completer
	timeout   time.Duration
	validate  *validator.Validate
	logger    *log.Logger
}

func NewAnalyzer(completer Completer, timeout time.Duration, logger *log.Logger) *Analyzer {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Analyzer{
		completer: completer,
		timeout:   timeout,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    logger,
	}
}

// Analyze validates in, calls the model once and parses its answer. There is
// no retry.
func (a *Analyzer) Analyze(ctx context.Context, in Input) (Result, error) {
	if err := a.Validate(in); err != nil {
		return Result{}, err
	}
	if a.completer == nil {
		return Result{}, fmt.Errorf("%w: no completion backend configured", ErrAnalysisFailed)
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	started := time.Now()
	content, err := a.completer.Complete(callCtx, systemPrompt, BuildPrompt(in))
	if err != nil {
		a.logger.Printf("ATS analysis failed | job_title=%q duration=%s err=%v", in.JobTitle, time.Since(started), err)
		return Result{}, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}
	if strings.TrimSpace(content) == "" {
		return Result{}, fmt.Errorf("%w: empty model response", ErrAnalysisFailed)
	}

	res, err := ParseResult(content)
	if err != nil {
		a.logger.Printf("ATS response rejected | job_title=%q err=%v", in.JobTitle, err)
		return Result{}, err
	}

	a.logger.Printf("ATS analysis completed | job_title=%q score=%d duration=%s", in.JobTitle, res.ATSScore, time.Since(started))
	return res, nil
}

func (a *Analyzer) Validate(in Input) error {
	err := a.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldName(fe)] = describe(fe)
	}
	return &ValidationError{Fields: fields}
}

func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	switch {
	case strings.HasPrefix(ns, "FileName"):
		return "fileName"
	case strings.HasPrefix(ns, "JobTitle"):
		return "jobTitle"
	case strings.HasPrefix(ns, "RequiredSkills"):
		return "requiredSkills" + strings.TrimPrefix(ns, "RequiredSkills")
	default:
		return ns
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must have at least " + fe.Param() + " item(s)"
	case "max":
		return "must be at most " + fe.Param() + " long"
	default:
		return "is invalid"
	}
}
