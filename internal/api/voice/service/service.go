package voiceService

import (
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	posService "PharmaPOS/internal/api/pos/service"
	"PharmaPOS/internal/api/voice"
	"PharmaPOS/pkg/nlp"
)

type IVoiceService interface {
	AttachRecognizer(terminalID string, rec voice.Recognizer, notify func(voice.FeedbackResponse)) *voice.Session
	ReleaseSession(terminalID string)

	EnableVoice(terminalID string, continuous bool) error
	DisableVoice(terminalID string) error
	Listen(terminalID string) error
	MarkUnsupported(terminalID string) error

	Status(terminalID string) voice.StatusResponse
	CommandLog(terminalID string, limit int) voice.CommandLogResponse

	ProcessUtterance(ctx context.Context, terminalID, raw string) voice.FeedbackResponse
}

type voiceService struct {
	log        *logrus.Logger
	posService posService.IPosService
	normalizer nlp.INormalizer
	dispatcher *voice.Dispatcher
	sched      voice.Scheduler

	mu       sync.Mutex
	sessions map[string]*voice.Session
	logs     map[string]*voice.CommandLog
}

func NewVoiceService(
	log *logrus.Logger,
	ps posService.IPosService,
	normalizer nlp.INormalizer,
	sched voice.Scheduler,
) IVoiceService {
	if sched == nil {
		sched = voice.NewScheduler()
	}
	return &voiceService{
		log:        log,
		posService: ps,
		normalizer: normalizer,
		dispatcher: voice.NewDispatcher(log),
		sched:      sched,
		sessions:   make(map[string]*voice.Session),
		logs:       make(map[string]*voice.CommandLog),
	}
}
