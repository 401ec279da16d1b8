package api

import (
	"github.com/redis/go-redis/v9"

	"blueline/reservehub/internal/common"
	"blueline/reservehub/internal/db"
	"blueline/reservehub/internal/db/repositories"
	"blueline/reservehub/internal/metrics"
	"blueline/reservehub/internal/services"
)

type Repositories struct {
	User      *repositories.UserRepositoryGORM
	Equipment *repositories.EquipmentRepository
	Event     *repositories.EventRepository
	Training  *repositories.TrainingRepository
	Policy    *repositories.PolicyRepository
	Roster    *repositories.RosterRepository
}

type Services struct {
	Cache         *common.CacheService
	Sessions      *common.SessionService
	Storage       *common.StorageService
	User          *services.UserService
	Equipment     *services.EquipmentService
	Event         *services.EventService
	Training      *services.TrainingService
	Policy        *services.PolicyService
	Notifications *services.NotificationService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
}

func InitDependencies(metricsReg *metrics.MetricsRegistry, redisClient *redis.Client, enforceCapacity bool) (*Dependencies, error) {

	repos := &Repositories{
		User:      repositories.NewUserRepositoryGORM(db.PgDB),
		Equipment: repositories.NewEquipmentRepository(db.PgDB),
		Event:     repositories.NewEventRepository(db.PgDB),
		Training:  repositories.NewTrainingRepository(db.PgDB),
		Policy:    repositories.NewPolicyRepository(db.PgDB),
		Roster:    repositories.NewRosterRepository(db.DB),
	}

	cacheSvc := common.NewCacheService(60000, 600)
	sessionSvc := common.NewSessionService(redisClient)
	storageSvc := common.NewStorageService(cacheSvc)

	notificationSvc := services.NewNotificationService(db.PgDB, repos.User, metricsReg)

	svcs := &Services{
		Cache:         cacheSvc,
		Sessions:      sessionSvc,
		Storage:       storageSvc,
		User:          services.NewUserService(repos.User),
		Equipment:     services.NewEquipmentService(db.PgDB, notificationSvc, metricsReg),
		Event:         services.NewEventService(repos.Event, repos.User, notificationSvc, metricsReg, enforceCapacity),
		Training:      services.NewTrainingService(repos.Training, repos.User, notificationSvc, metricsReg, enforceCapacity),
		Policy:        services.NewPolicyService(repos.Policy, notificationSvc),
		Notifications: notificationSvc,
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
	}, nil
}
