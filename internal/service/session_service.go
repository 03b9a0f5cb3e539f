package service

import (
	"alcyxob/physio-app/internal/domain"
	"alcyxob/physio-app/internal/generator"
	"alcyxob/physio-app/internal/observability"
	"alcyxob/physio-app/internal/repository"
	"context"
	"errors"
	"log/slog"
	"time"
)

// SessionService runs the self-assessment pipeline and reads a user's sessions back.
type SessionService interface {
	// CreateSession validates the command, stores the session and its ratings,
	// generates a training plan and returns the hydrated session.
	CreateSession(ctx context.Context, cmd domain.CreateSessionCommand) (*domain.Session, error)
	GetSession(ctx context.Context, userID string, sessionID int64) (*domain.Session, error)
	ListSessions(ctx context.Context, userID string) ([]domain.Session, error)
}

// SessionServiceOptions groups the collaborators of NewSessionService.
type SessionServiceOptions struct {
	Validator *DomainValidator
	Gateway   *DomainDataGateway
	Sessions  repository.SessionRepository
	ErrorLog  *GenerationErrorLogger
	Metrics   *observability.Metrics

	// Generator produces the plan. Fallback, when set, runs after Generator fails.
	Generator generator.Generator
	Fallback  generator.Generator

	RequireDisclaimer bool
}

type sessionService struct {
	validator         *DomainValidator
	gateway           *DomainDataGateway
	sessions          repository.SessionRepository
	errorLog          *GenerationErrorLogger
	metrics           *observability.Metrics
	generator         generator.Generator
	fallback          generator.Generator
	requireDisclaimer bool
	now               func() time.Time
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(opts SessionServiceOptions) SessionService {
	return &sessionService{
		validator:         opts.Validator,
		gateway:           opts.Gateway,
		sessions:          opts.Sessions,
		errorLog:          opts.ErrorLog,
		metrics:           opts.Metrics,
		generator:         opts.Generator,
		fallback:          opts.Fallback,
		requireDisclaimer: opts.RequireDisclaimer,
		now:               func() time.Time { return time.Now().UTC() },
	}
}

// CreateSession moves through validation, session and rating inserts, domain data
// loading, plan generation and plan persistence. Nothing is retried and writes that
// already happened are not undone: a failure after the session insert leaves the
// session with an empty plan.
func (s *sessionService) CreateSession(ctx context.Context, cmd domain.CreateSessionCommand) (session *domain.Session, err error) {
	start := time.Now()
	defer func() {
		kind := ""
		if err != nil {
			kind = string(domain.KindOf(err))
		}
		s.metrics.ObserveSession(kind, time.Since(start))
	}()

	// ValidatingDomain: nothing written, nothing logged.
	bodyPart, err := s.validate(ctx, &cmd)
	if err != nil {
		slog.Info("Session submission rejected", "user_id", cmd.UserID, "body_part_id", cmd.BodyPartID, "error", err)
		return nil, err
	}

	// CreatingSession
	newSession := &domain.Session{
		BodyPartID:           cmd.BodyPartID,
		UserID:               cmd.UserID,
		DisclaimerAcceptedAt: s.now(),
	}
	sessionID, err := s.sessions.Create(ctx, newSession)
	if err != nil {
		return nil, s.abort(ctx, cmd.UserID, domain.ErrorCodeSessionCreationFailed,
			domain.NewError(domain.KindPersistence, err, "failed to create session"))
	}
	log := slog.With("session_id", sessionID, "user_id", cmd.UserID)
	log.Info("Session created", "body_part_id", cmd.BodyPartID, "tests", len(cmd.Tests))

	// RecordingRatings
	if _, err := s.sessions.CreateTests(ctx, sessionID, cmd.Tests); err != nil {
		return nil, s.abort(ctx, cmd.UserID, domain.ErrorCodeSessionCreationFailed,
			domain.NewError(domain.KindPersistence, err, "failed to record muscle test ratings for session %d", sessionID))
	}

	// FetchingDomainData
	muscleTests, exercises, err := s.gateway.FetchTestsAndExercises(ctx, cmd.TestIDs())
	if err != nil {
		return nil, s.abort(ctx, cmd.UserID, domain.ErrorCodeSessionCreationFailed, err)
	}

	// GeneratingPlan
	in := generator.Input{
		BodyPartName: bodyPart.Name,
		Tests:        withPain(cmd.Tests, muscleTests),
		Exercises:    exercises,
	}
	if !in.HasCandidates() {
		return nil, s.abort(ctx, cmd.UserID, domain.ErrorCodeSessionCreationFailed,
			domain.NewError(domain.KindDataUnavailable, generator.ErrNoCandidates, "%s", generator.ErrNoCandidates.Error()))
	}
	plan, err := s.generate(ctx, cmd.UserID, in)
	if err != nil {
		return nil, err
	}

	// PersistingPlan
	if err := s.sessions.UpdateTrainingPlan(ctx, sessionID, *plan); err != nil {
		return nil, s.abort(ctx, cmd.UserID, domain.ErrorCodeSessionCreationFailed,
			domain.NewError(domain.KindPersistence, err, "failed to store training plan for session %d", sessionID))
	}
	session, err = s.sessions.GetWithTests(ctx, sessionID)
	if err != nil {
		return nil, s.abort(ctx, cmd.UserID, domain.ErrorCodeSessionCreationFailed,
			domain.NewError(domain.KindPersistence, err, "failed to load session %d", sessionID))
	}
	session.FeedbackRating = nil

	log.Info("Training plan generated", "exercises", len(plan.Exercises))
	return session, nil
}

// validate runs the shape check, the disclaimer gate and the catalog checks.
func (s *sessionService) validate(ctx context.Context, cmd *domain.CreateSessionCommand) (*domain.BodyPart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	cmd.Normalize()

	if s.requireDisclaimer && !cmd.DisclaimerAccepted {
		return nil, domain.NewError(domain.KindDisclaimerRequired, nil, "the medical disclaimer must be accepted before starting a session")
	}

	bodyPart, err := s.validator.ValidateBodyPart(ctx, cmd.BodyPartID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateMuscleTests(ctx, cmd.BodyPartID, cmd.Tests); err != nil {
		return nil, err
	}
	return bodyPart, nil
}

// generate runs the configured generator. Its failure is logged as ai_generation_failed;
// then the fallback generator runs if there is one, otherwise the pipeline stops.
func (s *sessionService) generate(ctx context.Context, userID string, in generator.Input) (*domain.TrainingPlan, error) {
	plan, err := s.runGenerator(ctx, s.generator, in)
	if err == nil {
		return plan, nil
	}

	s.errorLog.Log(ctx, domain.ErrorCodeAIGenerationFailed, err.Error(), userID)
	if s.fallback == nil {
		return nil, domain.NewError(domain.KindGeneratorFailure, err, "failed to generate training plan")
	}

	slog.Warn("Plan generator failed, using fallback", "generator", s.generator.Name(), "fallback", s.fallback.Name(), "user_id", userID, "error", err)
	plan, err = s.runGenerator(ctx, s.fallback, in)
	if err != nil {
		return nil, domain.NewError(domain.KindGeneratorFailure, err, "failed to generate training plan")
	}
	return plan, nil
}

func (s *sessionService) runGenerator(ctx context.Context, g generator.Generator, in generator.Input) (*domain.TrainingPlan, error) {
	start := time.Now()
	plan, err := g.Generate(ctx, in)
	if err == nil && plan == nil {
		err = &generator.Error{Generator: g.Name(), Stage: generator.StageParse, Err: errors.New("generator returned no plan")}
	}
	stage := ""
	if err != nil {
		stage = string(generator.StageOf(err))
		if stage == "" {
			stage = "unknown"
		}
	}
	s.metrics.ObserveGeneration(g.Name(), stage, time.Since(start))
	return plan, err
}

// abort records a failure that happened after validation and returns it.
func (s *sessionService) abort(ctx context.Context, userID, code string, err error) error {
	slog.Error("Session generation aborted", "user_id", userID, "code", code, "error", err)
	s.errorLog.Log(ctx, code, err.Error(), userID)
	return err
}

// withPain pairs each submitted rating with its muscle test, in submission order.
func withPain(ratings []domain.TestRating, muscleTests []domain.MuscleTest) []domain.MuscleTestWithPain {
	byID := make(map[int64]domain.MuscleTest, len(muscleTests))
	for _, mt := range muscleTests {
		byID[mt.ID] = mt
	}
	out := make([]domain.MuscleTestWithPain, 0, len(ratings))
	for _, r := range ratings {
		mt, ok := byID[r.MuscleTestID]
		if !ok {
			continue
		}
		out = append(out, domain.MuscleTestWithPain{MuscleTest: mt, PainIntensity: r.PainIntensity})
	}
	return out
}

// GetSession returns one of userID's sessions. Another user's session is reported as not found.
func (s *sessionService) GetSession(ctx context.Context, userID string, sessionID int64) (*domain.Session, error) {
	session, err := s.sessions.GetWithTests(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewError(domain.KindNotFound, err, "session %d not found", sessionID)
		}
		return nil, domain.NewError(domain.KindPersistence, err, "failed to load session %d", sessionID)
	}
	if session.UserID != userID {
		return nil, domain.NewError(domain.KindNotFound, repository.ErrNotFound, "session %d not found", sessionID)
	}
	return session, nil
}

// ListSessions returns userID's sessions, newest first.
func (s *sessionService) ListSessions(ctx context.Context, userID string) ([]domain.Session, error) {
	sessions, err := s.sessions.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewError(domain.KindPersistence, err, "failed to list sessions")
	}
	if sessions == nil {
		sessions = []domain.Session{}
	}
	return sessions, nil
}
