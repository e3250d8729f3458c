package main

import (
	"context"
	"log"

	"github.com/Mephistophillis/UnityCourseTracker/internal/course"
	"github.com/Mephistophillis/UnityCourseTracker/internal/events"
	infra "github.com/Mephistophillis/UnityCourseTracker/internal/infrastructure"
	"github.com/Mephistophillis/UnityCourseTracker/internal/infrastructure/driver"
	"github.com/Mephistophillis/UnityCourseTracker/internal/infrastructure/logging"
	"github.com/Mephistophillis/UnityCourseTracker/internal/infrastructure/uuid"
	ihttp "github.com/Mephistophillis/UnityCourseTracker/internal/interfaces/http"
	"github.com/Mephistophillis/UnityCourseTracker/internal/profile"
	"github.com/Mephistophillis/UnityCourseTracker/internal/session"
	"github.com/Mephistophillis/UnityCourseTracker/internal/tracker"
	"go.uber.org/zap"
)

func main() {
	log.SetFlags(log.Lshortfile | log.Ldate | log.Ltime)
	option, err := infra.InitConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewLogger(&logging.Config{
		FilePath: option.Logging.FilePath,
		Level:    option.Logging.Level,
		AppID:    option.AppID,
		Env:      option.Env,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %s\n", err)
	}
	logger = logger.With(
		zap.String("service.id", option.AppID),
	)
	defer logger.Sync()

	courseData, err := course.Load(context.Background(), option.Course.FixtureURL)
	if err != nil {
		log.Fatalf("Failed to load course fixture: %s\n", err)
	}
	logger.Debug("Loaded course fixture",
		zap.String("course.fixture", option.Course.FixtureURL),
		zap.Int("course.lessons", courseData.TotalLessons()),
	)

	idGenerator := uuid.NewNanoIDGenerator(option.Security.IDLength)
	hub := events.NewHub(idGenerator)

	var (
		dbConn       driver.ITransactionalDB
		kv           driver.KeyValueDB
		profileStore profile.Store
	)
	if option.Env == infra.EnvProduction {
		dbConn, err = driver.GetDBConnection(&driver.DBConfig{
			User:     option.Database.User,
			Password: option.Database.Password,
			MaxConn:  option.Database.MaxConn,
			Protocol: option.Database.Protocol,
			Driver:   option.Database.Driver,
			Host:     option.Database.Host,
			Port:     option.Database.Port,
			Query:    option.Database.Query,
			Schema:   option.Database.Schema,
		})
		if err != nil {
			log.Fatalf("Failed to create DB connection: %s\n", err)
		}
		logger.Debug("Create db connection instance", zap.String("db.driver", option.Database.Driver),
			zap.String("db.schema", option.Database.Schema),
			zap.String("db.host", option.Database.Host),
		)
		kv = driver.NewRedisClient(option.KVStore.Host, option.KVStore.Port, option.KVStore.Password)
		profileStore = profile.NewSQLStore(dbConn)
	} else {
		kv = driver.NewMemoryKV()
		profileStore = profile.NewFixtureStore(option.Roster.FixtureURL, kv)
	}

	sessions := session.NewKVStore(kv)

	var progressTracker tracker.Tracker
	if option.Env == infra.EnvProduction {
		progressTracker = tracker.NewRemoteTracker(profileStore, sessions, hub, logger)
	} else {
		progressTracker = tracker.NewLocalTracker(profileStore, sessions, hub, logger)
	}

	ihttp.Serve(dbConn, kv, option, progressTracker, sessions, courseData, hub, logger)
}
