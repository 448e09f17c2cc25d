package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"college-portal.backend/internal/config"
	"college-portal.backend/internal/domain/entities"
	"college-portal.backend/internal/infrastructure/datasources/postgres"
	"college-portal.backend/internal/infrastructure/repositories"
	"college-portal.backend/internal/usecases"
	"college-portal.backend/pkg/crypto"
)

// passwordEnv lets the password stay out of shell history
const passwordEnv = "BOOTSTRAP_HOD_PASSWORD"

type bootstrapRuntime interface {
	SeedHod(ctx context.Context, input *usecases.BootstrapInput) (*entities.UserView, error)
}

type bootstrapDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	getenv  func(string) string
	prepare func(cfg *config.Config) (bootstrapRuntime, io.Closer, error)
	out     io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultBootstrapDeps() bootstrapDeps {
	return bootstrapDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		getenv:  os.Getenv,
		prepare: func(cfg *config.Config) (bootstrapRuntime, io.Closer, error) {
			db, err := postgres.NewConnection(cfg.Database)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}
			sqlDB, err := db.DB()
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}
			if err := postgres.Migrate(db); err != nil {
				_ = sqlDB.Close()
				return nil, nil, fmt.Errorf("failed to migrate db: %w", err)
			}

			return usecases.NewBootstrapUsecase(
				repositories.NewUnitOfWork(db),
				repositories.NewUserRepository(db),
				repositories.NewProfileRepository(db),
				repositories.NewDepartmentRepository(db),
				crypto.NewHasher(cfg.Security.BcryptCost),
			), sqlDB, nil
		},
		out: os.Stdout,
	}
}

func runBootstrap(args []string, deps bootstrapDeps) error {
	def := defaultBootstrapDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.getenv == nil {
		deps.getenv = def.getenv
	}
	if deps.prepare == nil {
		deps.prepare = def.prepare
	}
	if deps.out == nil {
		deps.out = def.out
	}

	fs := flag.NewFlagSet("bootstrap", flag.ContinueOnError)
	deptFlag := fs.String("department", "", "department code, created when missing (required)")
	deptNameFlag := fs.String("department-name", "", "department display name (optional)")
	nameFlag := fs.String("name", "", "HOD full name (required)")
	emailFlag := fs.String("email", "", "HOD email (required)")
	passwordFlag := fs.String("password", "", "HOD password, defaults to $"+passwordEnv)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	password := *passwordFlag
	if password == "" {
		password = deps.getenv(passwordEnv)
	}
	if *deptFlag == "" || *nameFlag == "" || *emailFlag == "" || password == "" {
		return fmt.Errorf("--department, --name, --email and a password are required")
	}

	cfg := deps.loadCfg()
	runtime, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	hod, err := runtime.SeedHod(context.Background(), &usecases.BootstrapInput{
		DepartmentCode: *deptFlag,
		DepartmentName: *deptNameFlag,
		Name:           *nameFlag,
		Email:          *emailFlag,
		Password:       password,
	})
	if err != nil {
		return fmt.Errorf("failed creating HOD: %w", err)
	}

	_, _ = fmt.Fprintln(deps.out, "Created APPROVED HOD")
	_, _ = fmt.Fprintf(deps.out, "user_id=%s\n", hod.ID.String())
	_, _ = fmt.Fprintf(deps.out, "email=%s\n", hod.Email)
	if hod.Hod != nil {
		_, _ = fmt.Fprintf(deps.out, "department_id=%s\n", hod.Hod.DepartmentID.String())
	}
	return nil
}

func main() {
	if err := runBootstrap(os.Args[1:], defaultBootstrapDeps()); err != nil {
		log.Fatal(err)
	}
}
