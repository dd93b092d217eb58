package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"textlens/internal/classifier"
	"textlens/internal/config"
	"textlens/internal/logger"
	"textlens/internal/services"
	"textlens/internal/store"
	"textlens/internal/store/primary"
)

// Options selects which parts of the App are initialized.
type Options struct {
	// LoadModels fetches both model configs before the App is returned.
	// Commands that only read or delete entries leave it off.
	LoadModels bool
}

type App struct {
	Config *config.Config
	Logger *log.Logger

	AnalysisStore store.AnalysisStore
	Emotion       *classifier.Classifier
	Gibberish     *classifier.Classifier

	AnalysisService *services.AnalysisService

	primary *primary.StoreImpl
}

func NewApp(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	app := &App{Config: cfg, Logger: logger.Get()}

	if err := app.initPrimaryStore(ctx); err != nil {
		return nil, err
	}
	if opts.LoadModels {
		if err := app.initClassifiers(ctx); err != nil {
			app.Close()
			return nil, err
		}
	}
	app.initServices()
	return app, nil
}

// --- Private Helper Methods ---

func (a *App) initPrimaryStore(ctx context.Context) error {
	storeOpts := primary.Options{MaxConns: a.Config.Database.MaxConns}
	if a.Config.Database.LogQueries {
		storeOpts.Logger = a.Logger
	}
	ps, err := primary.NewPrimaryStore(ctx, a.Config.DatabaseDSN(), storeOpts)
	if err != nil {
		return fmt.Errorf("init primary store: %w", err)
	}
	if err := ps.EnsureSchema(ctx); err != nil {
		ps.Close()
		return fmt.Errorf("init primary store: %w", err)
	}
	a.primary = ps
	a.AnalysisStore = ps
	return nil
}

func (a *App) initClassifiers(ctx context.Context) error {
	inf := a.Config.Inference
	newClassifier := func(model string) *classifier.Classifier {
		return classifier.New(model, classifier.Options{
			HubURL:       inf.HubURL,
			InferenceURL: inf.URL,
			APIToken:     inf.APIToken,
			MaxLength:    inf.MaxLength,
			HTTPClient:   classifier.NewRetryableHTTPClient(inf.MaxRetries, inf.Timeout),
		})
	}

	a.Emotion = newClassifier(inf.EmotionModel)
	a.Gibberish = newClassifier(inf.GibberishModel)
	for _, c := range []*classifier.Classifier{a.Emotion, a.Gibberish} {
		if err := c.Load(ctx); err != nil {
			return fmt.Errorf("load model %s: %w", c.Model(), err)
		}
		a.Logger.WithFields(log.Fields{
			"model":  c.Model(),
			"labels": len(c.Labels()),
		}).Info("Model loaded")
	}
	return nil
}

func (a *App) initServices() {
	deps := services.AnalysisServiceDeps{
		Store:  a.AnalysisStore,
		Logger: a.Logger,
	}
	// Leave the interfaces nil rather than holding typed nil pointers, so
	// Analyze reports ErrModelNotLoaded when models were not requested.
	if a.Emotion != nil {
		deps.Emotion = a.Emotion
	}
	if a.Gibberish != nil {
		deps.Gibberish = a.Gibberish
	}
	a.AnalysisService = services.NewAnalysisService(deps)
}

// Close releases the database pool.
func (a *App) Close() {
	if a != nil && a.primary != nil {
		a.primary.Close()
		a.primary = nil
	}
}
