package service

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/kowshikmeda/KabaddiBackend/internal/models"
	"github.com/kowshikmeda/KabaddiBackend/internal/repository"
)

type UserService struct {
	userRepo  *repository.UserRepository
	statsRepo *repository.MatchStatsRepository
}

func NewUserService(userRepo *repository.UserRepository, statsRepo *repository.MatchStatsRepository) *UserService {
	return &UserService{
		userRepo:  userRepo,
		statsRepo: statsRepo,
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *UserService) Register(name, email, password string) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	existingUser, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existingUser != nil {
		return nil, ErrUserAlreadyExists
	}

	passwordHash, err := models.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(name, email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns the user.
func (s *UserService) Login(email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *UserService) GetByID(id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

// ListPlayers returns every registered user as a selectable player.
func (s *UserService) ListPlayers() ([]*models.Player, error) {
	players, err := s.userRepo.FindAllPlayers()
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	return players, nil
}

// Update changes the current user's profile.
func (s *UserService) Update(id, name string, photo *string) error {
	err := s.userRepo.Update(id, name, photo)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

const recentProfileMatches = 5

// PlayerProfile is a player's career view: lifetime raid/tackle totals
// and their lines from the most recent matches.
type PlayerProfile struct {
	ID                string                     `json:"id"`
	Name              string                     `json:"name"`
	Photo             *string                    `json:"photo,omitempty"`
	MatchesPlayed     int                        `json:"matchesPlayed"`
	TotalRaidPoints   int                        `json:"totalRaidPoints"`
	TotalTacklePoints int                        `json:"totalTacklePoints"`
	TotalPoints       int                        `json:"totalPoints"`
	RecentMatches     []*models.PlayerMatchStats `json:"recentMatches"`
}

func buildPlayerProfile(user *models.User, raidPoints, tacklePoints, matchesPlayed int, recent []*models.PlayerMatchStats) *PlayerProfile {
	if recent == nil {
		recent = []*models.PlayerMatchStats{}
	}
	return &PlayerProfile{
		ID:                user.ID,
		Name:              user.Name,
		Photo:             user.Photo,
		MatchesPlayed:     matchesPlayed,
		TotalRaidPoints:   raidPoints,
		TotalTacklePoints: tacklePoints,
		TotalPoints:       raidPoints + tacklePoints,
		RecentMatches:     recent,
	}
}

// GetProfile assembles a player's career profile from their rostered
// match lines.
func (s *UserService) GetProfile(playerID string) (*PlayerProfile, error) {
	user, err := s.GetByID(playerID)
	if err != nil {
		return nil, err
	}

	raidPoints, tacklePoints, matchesPlayed, err := s.statsRepo.CareerTotals(playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load career totals: %w", err)
	}

	recent, err := s.statsRepo.FindMatchesByPlayerID(playerID, recentProfileMatches, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent matches: %w", err)
	}

	return buildPlayerProfile(user, raidPoints, tacklePoints, matchesPlayed, recent), nil
}

// ListPlayedMatches pages through the matches a player appeared in,
// newest first.
func (s *UserService) ListPlayedMatches(playerID string, page, pageSize int) ([]*models.PlayerMatchStats, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	if _, err := s.GetByID(playerID); err != nil {
		return nil, 0, err
	}

	lines, err := s.statsRepo.FindMatchesByPlayerID(playerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list played matches: %w", err)
	}

	total, err := s.statsRepo.CountMatchesByPlayerID(playerID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count played matches: %w", err)
	}

	return lines, total, nil
}
