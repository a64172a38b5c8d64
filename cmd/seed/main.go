package main

import (
	"context"
	"time"

	"github.com/dancan-sandys/isomanagement/internal/config"
	"github.com/dancan-sandys/isomanagement/internal/database"
	"github.com/dancan-sandys/isomanagement/internal/features/audit"
	"github.com/dancan-sandys/isomanagement/internal/features/document"
	"github.com/dancan-sandys/isomanagement/internal/features/workflow"
	"github.com/dancan-sandys/isomanagement/internal/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Seed creates a demo document with a three-step approval chain so the
// workflow endpoints have something to act on out of the box.
func Seed(
	lc fx.Lifecycle,
	mongodb *database.MongodbDB,
	store workflow.WorkflowStore,
	service workflow.WorkflowService,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				logger.Info("Seeding demo approval workflow...")

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := store.EnsureIndexes(ctx); err != nil {
					logger.Error("Failed to ensure workflow indexes", zap.Error(err))
					return
				}

				docID := primitive.NewObjectID()
				meta := document.Meta{
					ID:        docID,
					Title:     "HACCP Plan - Raw Milk Reception",
					CreatedBy: "qa.author",
					CreatedAt: time.Now().Add(-48 * time.Hour),
				}
				if _, err := mongodb.DB.Collection("documents").InsertOne(ctx, meta); err != nil {
					logger.Error("Failed to seed document", zap.Error(err))
					return
				}

				creator := workflow.Principal{ID: "qa.author"}
				wf, err := service.StartReview(ctx, creator, docID.Hex(), []workflow.StepInput{
					{Name: "Quality Review", AssignedTo: "qa.reviewer"},
					{Name: "Technical Review", AssignedTo: "tech.lead"},
					{Name: "Final Approval", AssignedTo: "plant.manager"},
				})
				if err != nil {
					logger.Error("Failed to seed workflow", zap.Error(err))
					return
				}

				logger.Info("Seeded demo workflow",
					zap.String("document_id", wf.DocumentID),
					zap.Int("steps", len(wf.Steps)),
				)
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,
			workflow.NewWorkflowStore,
			document.NewDocumentRepository,
			audit.NewAuditRepository,
			audit.NewAuditService,
			workflow.NewWorkflowService,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	app.Run()
}

