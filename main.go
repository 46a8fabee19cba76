package main

import (
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/aggregate"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/config"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/content"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/database"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/logging"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/router"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/services"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/utils"

	"go.uber.org/zap"
)

func main() {
	// Initialize Logger
	log, err := logging.Init(".")
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// Initialize Configuration
	if err := config.Init(".", log); err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Without a configured aggregation token the trigger endpoint rejects
	// everything, so generate a one-off token for this process and log it.
	if config.Conf.Server.AggregationToken == "" {
		token, err := utils.GenerateSecureToken(32)
		if err != nil {
			log.Fatal("Failed to generate aggregation token", zap.Error(err))
		}
		config.Conf.Server.AggregationToken = token
		log.Info("Generated one-off aggregation token", zap.String("token", token))
	}

	// Initialize Database
	database.Init(log)

	// Load word pools at startup
	pools, err := content.LoadPools(config.Conf.Generator.PoolFile)
	if err != nil {
		log.Fatal("Failed to load word pools", zap.Error(err))
	}
	generator := content.NewGenerator(pools,
		config.Conf.Generator.WeakProbability,
		config.Conf.Generator.TopWeaknesses,
	)

	// Aggregation runner, shared by the daily schedule and the HTTP
	// trigger. Successful replaces invalidate the cached profile.
	cache := services.NewCache()
	aggConf := config.Conf.Aggregation
	runner := aggregate.NewRunner(log, aggConf.WindowDays, aggConf.BatchCap, aggConf.Workers)
	runner.OnReplace = func(userID uint) {
		cache.Delete(services.ProfileCacheKey(userID))
	}

	scheduler := services.NewScheduler(log, runner, aggConf.DailyAt)
	scheduler.Start()
	defer scheduler.Stop()

	// Setup router, passing the logger to it
	r := router.Setup(log, generator, runner, cache)

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
