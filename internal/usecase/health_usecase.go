package usecase

import "context"

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	relay      string
	redisCheck func(ctx context.Context) error
}

// NewHealthUsecase reports the relay in use and, when given, the Redis status
func NewHealthUsecase(relay string, redisCheck func(ctx context.Context) error) HealthUsecase {
	return &healthUsecase{relay: relay, redisCheck: redisCheck}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := map[string]string{
		"status": "ok",
		"relay":  u.relay,
		"redis":  "disabled",
	}
	if u.redisCheck != nil {
		if err := u.redisCheck(ctx); err != nil {
			// rate limiting degrades to memory, the service stays up
			status["redis"] = "unavailable"
		} else {
			status["redis"] = "ok"
		}
	}
	return status
}
