package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"motorhub.backend/internal/config"
	"motorhub.backend/internal/domain/entities"
	domainerrors "motorhub.backend/internal/domain/errors"
	domainrepo "motorhub.backend/internal/domain/repositories"
	"motorhub.backend/internal/infrastructure/datasources/postgres"
	"motorhub.backend/internal/infrastructure/models"
	"motorhub.backend/internal/infrastructure/repositories"
	"motorhub.backend/internal/usecases"
	"motorhub.backend/pkg/crypto"
	"motorhub.backend/pkg/utils"
)

// seedFile is the fixture layout
type seedFile struct {
	Users    []seedUser    `yaml:"users"`
	Listings []seedListing `yaml:"listings"`
}

type seedUser struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
	Verified bool   `yaml:"verified"`
}

type seedListing struct {
	Dealer      string            `yaml:"dealer"`
	Make        string            `yaml:"make"`
	Model       string            `yaml:"model"`
	Year        int               `yaml:"year"`
	Price       string            `yaml:"price"`
	Mileage     int               `yaml:"mileage"`
	Description string            `yaml:"description"`
	Specs       map[string]string `yaml:"specs"`
	Categories  []string          `yaml:"categories"`
	Images      []string          `yaml:"images"`
	Approved    bool              `yaml:"approved"`
	Featured    bool              `yaml:"featured"`
}

type seedRuntime struct {
	users    domainrepo.UserRepository
	resolver *usecases.ActorResolver
	listings *usecases.ListingUsecase
}

func newSeedRuntime(db *gorm.DB) seedRuntime {
	userRepo := repositories.NewUserRepository(db)
	dispatcher := usecases.NewNotificationDispatcher(repositories.NewNotificationRepository(db), userRepo)
	return seedRuntime{
		users:    userRepo,
		resolver: usecases.NewActorResolver(userRepo),
		listings: usecases.NewListingUsecase(repositories.NewListingRepository(db), dispatcher),
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type seedDeps struct {
	loadEnv  func() error
	loadCfg  func() *config.Config
	prepare  func(cfg *config.Config) (seedRuntime, io.Closer, error)
	readFile func(name string) ([]byte, error)
	out      io.Writer
}

func defaultSeedDeps() seedDeps {
	return seedDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (seedRuntime, io.Closer, error) {
			sqlDB, err := postgres.NewConnection(cfg.Database)
			if err != nil {
				return seedRuntime{}, nil, err
			}
			db, err := postgres.NewGorm(sqlDB)
			if err != nil {
				_ = sqlDB.Close()
				return seedRuntime{}, nil, err
			}
			if cfg.Database.AutoMigrate {
				if err := models.AutoMigrate(db); err != nil {
					_ = sqlDB.Close()
					return seedRuntime{}, nil, fmt.Errorf("failed to migrate schema: %w", err)
				}
			}
			return newSeedRuntime(db), sqlDB, nil
		},
		readFile: os.ReadFile,
		out:      os.Stdout,
	}
}

func parseSeedFile(raw []byte) (*seedFile, error) {
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}
	for i, u := range f.Users {
		if u.Email == "" || u.Password == "" {
			return nil, fmt.Errorf("users[%d]: email and password are required", i)
		}
		switch entities.UserRole(strings.ToUpper(u.Role)) {
		case entities.UserRoleAdmin, entities.UserRoleDealer, entities.UserRoleBuyer:
		default:
			return nil, fmt.Errorf("users[%d]: unknown role %q", i, u.Role)
		}
	}
	return &f, nil
}

func runSeed(args []string, deps seedDeps) error {
	def := defaultSeedDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.prepare == nil {
		deps.prepare = def.prepare
	}
	if deps.readFile == nil {
		deps.readFile = def.readFile
	}
	if deps.out == nil {
		deps.out = def.out
	}

	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fileFlag := fs.String("file", "seed.yaml", "seed fixture (YAML)")
	withListings := fs.Bool("listings", true, "create the fixture listings; they are created again on every run")
	if err := fs.Parse(args); err != nil {
		return err
	}

	raw, err := deps.readFile(*fileFlag)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", *fileFlag, err)
	}
	fixture, err := parseSeedFile(raw)
	if err != nil {
		return err
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	runtime, closer, err := deps.prepare(deps.loadCfg())
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	ctx := context.Background()
	accounts := make(map[string]entities.Actor, len(fixture.Users))
	var admin *entities.Actor
	for _, u := range fixture.Users {
		user, created, err := ensureUser(ctx, runtime.users, u)
		if err != nil {
			return err
		}
		actor, err := runtime.resolver.Resolve(ctx, user.ID)
		if err != nil {
			return err
		}
		accounts[user.Email] = actor
		if admin == nil && actor.IsAdmin() {
			admin = &actor
		}
		state := "exists"
		if created {
			state = "created"
		}
		_, _ = fmt.Fprintf(deps.out, "user %s role=%s %s\n", user.Email, user.Role, state)
	}

	if !*withListings {
		return nil
	}
	for i, l := range fixture.Listings {
		listing, err := createListing(ctx, runtime.listings, accounts, admin, l)
		if err != nil {
			return fmt.Errorf("listings[%d]: %w", i, err)
		}
		_, _ = fmt.Fprintf(deps.out, "listing %s %s status=%s\n", listing.ID, listing.Label(), listing.Status())
	}
	return nil
}

func ensureUser(ctx context.Context, repo domainrepo.UserRepository, in seedUser) (*entities.User, bool, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, false, err
	}

	hash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return nil, false, err
	}
	now := time.Now().UTC()
	user := &entities.User{
		ID:              utils.NewID(),
		Name:            in.Name,
		Email:           email,
		PasswordHash:    hash,
		Role:            entities.UserRole(strings.ToUpper(in.Role)),
		IsVerified:      in.Verified,
		VerifiedByAdmin: in.Verified,
		KYCStatus:       entities.KYCNone,
		Favorites:       []uuid.UUID{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func createListing(ctx context.Context, uc *usecases.ListingUsecase, accounts map[string]entities.Actor, admin *entities.Actor, in seedListing) (*entities.Listing, error) {
	if admin == nil {
		return nil, errors.New("an ADMIN account is required to seed listings")
	}
	owner := *admin
	if in.Dealer != "" {
		dealer, ok := accounts[strings.ToLower(in.Dealer)]
		if !ok {
			return nil, fmt.Errorf("unknown dealer %q", in.Dealer)
		}
		owner = dealer
	}
	price, err := decimal.NewFromString(in.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q", in.Price)
	}

	listing, err := uc.Create(ctx, owner, &entities.ListingInput{
		Make:        in.Make,
		Model:       in.Model,
		Year:        in.Year,
		Price:       price,
		Mileage:     in.Mileage,
		Description: in.Description,
		Specs:       in.Specs,
		Categories:  in.Categories,
		Images:      in.Images,
	})
	if err != nil {
		return nil, err
	}
	if in.Approved && listing.Status() == entities.ListingStatusPending {
		if listing, err = uc.Approve(ctx, *admin, listing.ID); err != nil {
			return nil, err
		}
	}
	if in.Featured {
		if err := uc.SetFeatured(ctx, *admin, listing.ID, true); err != nil {
			return nil, err
		}
	}
	return listing, nil
}

func main() {
	if err := runSeed(os.Args[1:], defaultSeedDeps()); err != nil {
		log.Fatal(err)
	}
}
