package bootstrap

import (
	"log"

	"ai-poemreview-be/internal/config"
	"ai-poemreview-be/internal/controller"
	"ai-poemreview-be/internal/pkg/logger"
	"ai-poemreview-be/internal/repository/unitofwork"
	"ai-poemreview-be/internal/service"
	"ai-poemreview-be/pkg/audiostore"
	"ai-poemreview-be/pkg/interviewer"
	"ai-poemreview-be/pkg/poet"
	"ai-poemreview-be/pkg/reviser"
	"ai-poemreview-be/pkg/transcribe"

	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	PoemController     controller.IPoemController
	GuideController    controller.IGuideController
	FeedbackController controller.IFeedbackController
	VoiceController    controller.IVoiceController
	RevisionController controller.IRevisionController

	// Exposed for serving stored audio
	AudioStore *audiostore.Store
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. AI Capabilities
	// The provider is chosen once here; services only see the interfaces.
	var (
		poemWriter  poet.Poet
		poemReviser reviser.Reviser
		smeAi       interviewer.Interviewer
		transcriber transcribe.Transcriber
	)
	if cfg.Ai.Provider == "openai" {
		poemWriter = poet.NewOpenAIPoet(cfg.Ai.OpenAIAPIKey, cfg.Ai.ChatModel)
		poemReviser = reviser.NewOpenAIReviser(cfg.Ai.OpenAIAPIKey, cfg.Ai.ChatModel)
		smeAi = interviewer.NewOpenAIInterviewer(cfg.Ai.OpenAIAPIKey, cfg.Ai.ChatModel)
		transcriber = transcribe.NewWhisperTranscriber(cfg.Ai.OpenAIAPIKey, cfg.Ai.AudioModel)
		log.Printf("[INFO] Using AI Provider: OPENAI (%s)", cfg.Ai.ChatModel)
	} else {
		poemWriter = poet.NewMockPoet()
		poemReviser = reviser.NewMechanicalReviser()
		smeAi = interviewer.NewMockInterviewer()
		transcriber = transcribe.NewMockTranscriber()
		log.Printf("[INFO] Using AI Provider: MOCK")
	}

	audioStore := audiostore.NewStore(cfg.Uploads.AudioDir)

	// 3. Services
	guideService := service.NewGuideService(uowFactory, cfg.Ai.GuideSeed, sysLogger)
	poemService := service.NewPoemService(uowFactory, guideService, poemWriter, sysLogger)
	feedbackService := service.NewFeedbackService(uowFactory, guideService, poemReviser, sysLogger)
	voiceService := service.NewVoiceService(uowFactory, guideService, smeAi, transcriber, audioStore, sysLogger)
	revisionService := service.NewRevisionService(uowFactory, guideService, sysLogger)

	// 4. Controllers
	return &Container{
		PoemController:     controller.NewPoemController(poemService),
		GuideController:    controller.NewGuideController(guideService),
		FeedbackController: controller.NewFeedbackController(feedbackService),
		VoiceController:    controller.NewVoiceController(voiceService),
		RevisionController: controller.NewRevisionController(revisionService),

		AudioStore: audioStore,
	}
}
