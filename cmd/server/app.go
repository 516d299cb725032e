package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/kestrelm/quorum-api/internal/board"
	"github.com/kestrelm/quorum-api/internal/config"
	"github.com/kestrelm/quorum-api/internal/platform/logger"
	"github.com/kestrelm/quorum-api/internal/platform/postgres"
	"github.com/kestrelm/quorum-api/internal/service"
	"github.com/kestrelm/quorum-api/internal/service/auth"
)

// defaultInvitationCodeLength applies when board.invitation_code_length is
// not configured.
const defaultInvitationCodeLength = 6

// application holds the wired-together components of the board engine.
type application struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *sql.DB

	questions *board.Questions
	answers   *board.Answers

	contentService service.ContentService
	voteService    service.VoteService
	reviewService  service.ReviewService
	messageService service.MessageService
	accountService service.AccountService
}

// initializeApp loads configuration, sets up logging and the database, and
// constructs every service. It does not load board state; Start does that.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	questions := board.NewQuestions()
	answers := board.NewAnswers()

	questionStore := postgres.NewPostgresQuestionStore(db, appLogger)
	answerStore := postgres.NewPostgresAnswerStore(db, appLogger)
	userStore := postgres.NewPostgresUserStore(db, appLogger)
	reviewStore := postgres.NewPostgresReviewStore(db, appLogger)
	messageStore := postgres.NewPostgresMessageStore(db, appLogger)

	contentService, err := service.NewContentService(
		questions, answers, questionStore, answerStore, userStore, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create content service: %w", err)
	}

	voteService, err := service.NewVoteService(answers, answerStore, userStore, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create vote service: %w", err)
	}

	reviewService, err := service.NewReviewService(reviewStore, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create review service: %w", err)
	}

	messageService, err := service.NewMessageService(messageStore, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create message service: %w", err)
	}

	codeLength := cfg.Board.InvitationCodeLength
	if codeLength == 0 {
		codeLength = defaultInvitationCodeLength
	}
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	accountService, err := service.NewAccountService(userStore, hasher, hasher, codeLength, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create account service: %w", err)
	}

	return &application{
		cfg:            cfg,
		logger:         appLogger,
		db:             db,
		questions:      questions,
		answers:        answers,
		contentService: contentService,
		voteService:    voteService,
		reviewService:  reviewService,
		messageService: messageService,
		accountService: accountService,
	}, nil
}

// Start brings the schema up to date and loads the persisted board state
// into the in-memory collections. Load failures degrade to an empty board
// rather than aborting startup; a failed migration does abort.
func (a *application) Start(ctx context.Context) error {
	if err := applyMigrations(a.db, a.logger); err != nil {
		return err
	}

	a.contentService.Load(ctx)
	a.logger.Info("board engine started",
		"questions", a.questions.Len(),
		"answers", a.answers.Len())
	return nil
}

// Close releases the application's resources.
func (a *application) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("failed to close database", "error", err)
		}
	}
}
