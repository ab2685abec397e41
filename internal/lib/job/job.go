// Package job runs background work on asynq, a Redis-backed task queue.
//
// The HTTP layer enqueues employee notifications through the
// JobService client; the embedded worker server processes them.
package job

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/employee-api/internal/config"
	"github.com/deppfellow/employee-api/internal/lib/email"
)

// mailer sends the e-mails behind each task type.
type mailer interface {
	SendWelcomeEmail(to, name string) error
	SendSalaryUpdatedEmail(to, name string, salary float64, yearsInCompany int) error
}

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// JobService holds the enqueue client and the worker server.
type JobService struct {
	Client Enqueuer
	server *asynq.Server
	logger *zerolog.Logger
	mailer mailer
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"critical": 6,
			"default":  3,
			"low":      1,
		},
		Logger:   newAsynqLogger(logger),
		LogLevel: asynq.WarnLevel,
	})

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		logger: logger,
	}
}

// InitHandlers sets up the dependencies the task handlers need.
// Without a Resend key, tasks are acknowledged and dropped.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	if client := email.NewClient(cfg, logger); client != nil {
		j.mailer = client
	}
}

func (j *JobService) mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskEmployeeWelcome, j.handleWelcomeEmailTask)
	mux.HandleFunc(TaskEmployeeSalaryUpdated, j.handleSalaryUpdatedTask)
	return mux
}

// Start launches the workers in the background and returns.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")
	return j.server.Start(j.mux())
}

// Stop waits for in-flight tasks and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}
