package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", t.Type()).
		Int64("employee_id", p.EmployeeID).
		Str("to", p.To).
		Logger()

	if j.mailer == nil {
		log.Warn().Msg("e-mail delivery disabled, dropping task")
		return nil
	}

	if err := j.mailer.SendWelcomeEmail(p.To, p.Name); err != nil {
		log.Error().Err(err).Msg("failed to send welcome email")
		return err
	}

	log.Info().Msg("sent welcome email")
	return nil
}

func (j *JobService) handleSalaryUpdatedTask(ctx context.Context, t *asynq.Task) error {
	var p SalaryUpdatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal salary updated payload: %w: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", t.Type()).
		Int64("employee_id", p.EmployeeID).
		Str("to", p.To).
		Logger()

	if j.mailer == nil {
		log.Warn().Msg("e-mail delivery disabled, dropping task")
		return nil
	}

	if err := j.mailer.SendSalaryUpdatedEmail(p.To, p.Name, p.Salary, p.YearsInCompany); err != nil {
		log.Error().Err(err).Msg("failed to send salary updated email")
		return err
	}

	log.Info().Float64("salary", p.Salary).Msg("sent salary updated email")
	return nil
}
