package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"fambalance/internal/credentials"
	"fambalance/internal/models"
	"fambalance/internal/repository"
	"fambalance/internal/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// User-facing messages
const (
	MsgFamilyNameTaken     = "Nome da família já existe."
	MsgAdminEmailTaken     = "Email do administrador já registrado."
	MsgFamilyNotFound      = "Família não encontrada."
	MsgInvalidInviteCode   = "Código de convite inválido."
	MsgBadFamilyLogin      = "Nome da família ou senha incorretos."
	MsgBadMemberLogin      = "Nome de usuário ou senha incorretos."
	MsgUserNotFound        = "Usuário não encontrado."
	MsgResetInfoMismatch   = "As informações não correspondem a uma família registrada."
	MsgNotLoggedIn         = "Nenhum usuário conectado."
	msgMemberNameTakenTmpl = "Um membro com o nome '%s' já existe nesta família."
)

const (
	// DefaultTrialDays is the premium trial granted at registration
	DefaultTrialDays = 14
	// DefaultBirthdayWindowDays is how far ahead upcoming birthdays are listed
	DefaultBirthdayWindowDays = 30

	inviteCodeAttempts = 10
)

// RegisterFamilyInput holds everything captured by the registration form
type RegisterFamilyInput struct {
	FamilyName     string
	AdminEmail     string
	FamilyPassword string
	Admin          models.Profile
}

// RegisterFamilyResult holds the ids created by RegisterFamily
type RegisterFamilyResult struct {
	FamilyID string
	AdminID  string
}

// JoinResult holds the ids resolved by JoinByInviteCode
type JoinResult struct {
	FamilyID string
	MemberID string
}

// AuthService handles families, members and the current session
type AuthService struct {
	userRepo    *repository.UserRepository
	familyRepo  *repository.FamilyRepository
	sessionRepo *repository.SessionRepository
	notifier    Notifier
	now         func() time.Time
	log         zerolog.Logger

	TrialDays          int
	BirthdayWindowDays int
	DefaultAvatar      string
}

// NewAuthService creates a new auth service. notifier may be nil; now
// defaults to time.Now.
func NewAuthService(userRepo *repository.UserRepository, familyRepo *repository.FamilyRepository, sessionRepo *repository.SessionRepository, notifier Notifier, now func() time.Time, log zerolog.Logger) *AuthService {
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		userRepo:           userRepo,
		familyRepo:         familyRepo,
		sessionRepo:        sessionRepo,
		notifier:           notifier,
		now:                now,
		log:                log.With().Str("component", "auth").Logger(),
		TrialDays:          DefaultTrialDays,
		BirthdayWindowDays: DefaultBirthdayWindowDays,
	}
}

// RegisterFamily creates a family and its admin user and starts the trial
func (s *AuthService) RegisterFamily(ctx context.Context, in RegisterFamilyInput) (*RegisterFamilyResult, error) {
	in.FamilyName = strings.TrimSpace(in.FamilyName)
	in.AdminEmail = strings.TrimSpace(in.AdminEmail)
	in.Admin = s.normalizeProfile(in.Admin)

	if err := validation.Required("familyName", in.FamilyName); err != nil {
		return nil, invalid(err)
	}
	if err := validation.ValidateEmail(in.AdminEmail); err != nil {
		return nil, invalid(err)
	}
	if err := validation.ValidatePassword(in.FamilyPassword); err != nil {
		return nil, invalid(err)
	}
	if err := validation.ValidateProfile(in.Admin); err != nil {
		return nil, invalid(err)
	}

	existing, err := s.familyRepo.GetFamilyByName(ctx, in.FamilyName)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing family: %w", err)
	}
	if existing != nil {
		return nil, conflict(MsgFamilyNameTaken)
	}

	existingUser, err := s.userRepo.GetUserByEmail(ctx, in.AdminEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, conflict(MsgAdminEmailTaken)
	}

	code, err := s.uniqueInviteCode(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	trialEndsAt := now.AddDate(0, 0, s.TrialDays)
	familyID := uuid.NewString()
	adminID := uuid.NewString()

	admin := &models.User{
		ID:        adminID,
		Name:      in.Admin.Name,
		BirthDate: in.Admin.BirthDate,
		Gender:    in.Admin.Gender,
		Avatar:    in.Admin.Avatar,
		FamilyID:  familyID,
		Email:     in.AdminEmail,
		Password:  in.FamilyPassword,
		Role:      models.RoleAdmin,
	}
	family := &models.Family{
		ID:             familyID,
		Name:           in.FamilyName,
		FamilyPassword: in.FamilyPassword,
		AdminID:        adminID,
		MemberIDs:      []string{adminID},
		InviteCode:     code,
		IsPremium:      false,
		CreatedAt:      now,
		TrialEndsAt:    &trialEndsAt,
	}

	if err := s.familyRepo.CreateFamily(ctx, family); err != nil {
		return nil, err
	}
	if err := s.userRepo.CreateUser(ctx, admin); err != nil {
		return nil, err
	}

	s.log.Info().Str("family_id", familyID).Str("admin_id", adminID).Msg("family registered")

	if s.notifier != nil {
		if err := s.notifier.SendWelcomeEmail(ctx, admin.Email, admin.Name, family.Name, family.InviteCode); err != nil {
			s.log.Warn().Err(err).Str("family_id", familyID).Msg("failed to send welcome email")
		}
	}

	return &RegisterFamilyResult{FamilyID: familyID, AdminID: adminID}, nil
}

// AddMember creates a member in an existing family. password may be empty,
// in which case the member cannot log in individually.
func (s *AuthService) AddMember(ctx context.Context, familyID string, profile models.Profile, password string) (*models.User, error) {
	family, err := s.familyRepo.GetFamilyByID(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if family == nil {
		return nil, notFound(MsgFamilyNotFound)
	}
	return s.addMember(ctx, family, profile, password)
}

// JoinByInviteCode adds a member to the family owning code
func (s *AuthService) JoinByInviteCode(ctx context.Context, code string, profile models.Profile, password string) (*JoinResult, error) {
	code = credentials.NormalizeInviteCode(code)
	if code == "" {
		return nil, conflict(MsgInvalidInviteCode)
	}

	family, err := s.familyRepo.GetFamilyByInviteCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if family == nil {
		return nil, conflict(MsgInvalidInviteCode)
	}

	member, err := s.addMember(ctx, family, profile, password)
	if err != nil {
		return nil, err
	}
	return &JoinResult{FamilyID: family.ID, MemberID: member.ID}, nil
}

func (s *AuthService) addMember(ctx context.Context, family *models.Family, profile models.Profile, password string) (*models.User, error) {
	profile = s.normalizeProfile(profile)
	if err := validation.ValidateProfile(profile); err != nil {
		return nil, invalid(err)
	}

	existing, err := s.userRepo.GetFamilyMemberByName(ctx, family.ID, profile.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing member: %w", err)
	}
	if existing != nil {
		return nil, conflict(fmt.Sprintf(msgMemberNameTakenTmpl, profile.Name))
	}

	member := &models.User{
		ID:        uuid.NewString(),
		Name:      profile.Name,
		BirthDate: profile.BirthDate,
		Gender:    profile.Gender,
		Avatar:    profile.Avatar,
		FamilyID:  family.ID,
		Password:  password,
		Role:      models.RoleMember,
	}
	if err := s.userRepo.CreateUser(ctx, member); err != nil {
		return nil, err
	}

	family.MemberIDs = append(family.MemberIDs, member.ID)
	if err := s.familyRepo.UpdateFamily(ctx, family); err != nil {
		return nil, err
	}

	s.log.Info().Str("family_id", family.ID).Str("member_id", member.ID).Msg("member added")
	return member, nil
}

// Login checks plaintext credentials and stores the session pointers.
// Family mode matches the family name and shared password and signs in as
// the admin; member mode matches a member's own name and password.
func (s *AuthService) Login(ctx context.Context, name, password string, familyLogin bool) (*models.User, error) {
	name = strings.TrimSpace(name)

	var user *models.User
	if familyLogin {
		family, err := s.familyRepo.GetFamilyByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if family == nil || password == "" || family.FamilyPassword != password {
			return nil, unauthorized(MsgBadFamilyLogin)
		}
		user, err = s.userRepo.GetUserByID(ctx, family.AdminID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, notFound(MsgUserNotFound)
		}
	} else {
		candidates, err := s.userRepo.GetUsersByName(ctx, name)
		if err != nil {
			return nil, err
		}
		for i := range candidates {
			if candidates[i].CanLoginIndividually() && candidates[i].Password == password {
				user = &candidates[i]
				break
			}
		}
		if user == nil {
			return nil, unauthorized(MsgBadMemberLogin)
		}
	}

	if err := s.sessionRepo.SetSession(ctx, models.Session{UserID: user.ID, FamilyID: user.FamilyID}); err != nil {
		return nil, err
	}

	s.log.Debug().Str("user_id", user.ID).Bool("family_login", familyLogin).Msg("logged in")
	return user, nil
}

// Logout clears the session pointers
func (s *AuthService) Logout(ctx context.Context) error {
	return s.sessionRepo.ClearSession(ctx)
}

// CurrentSession resolves the logged-in user and family
func (s *AuthService) CurrentSession(ctx context.Context) (*models.User, *models.Family, error) {
	session, err := s.sessionRepo.GetSession(ctx)
	if err != nil {
		return nil, nil, err
	}
	if session.IsEmpty() {
		return nil, nil, unauthorized(MsgNotLoggedIn)
	}

	user, err := s.userRepo.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, err
	}
	family, err := s.familyRepo.GetFamilyByID(ctx, session.FamilyID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || family == nil {
		return nil, nil, unauthorized(MsgNotLoggedIn)
	}
	return user, family, nil
}

// GetUser retrieves a user or a not-found error
func (s *AuthService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound(MsgUserNotFound)
	}
	return user, nil
}

// GetFamily retrieves a family or a not-found error
func (s *AuthService) GetFamily(ctx context.Context, familyID string) (*models.Family, error) {
	family, err := s.familyRepo.GetFamilyByID(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if family == nil {
		return nil, notFound(MsgFamilyNotFound)
	}
	return family, nil
}

// GetFamilyMembers returns the members in the family's member order
func (s *AuthService) GetFamilyMembers(ctx context.Context, familyID string) ([]models.User, error) {
	family, err := s.GetFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetUsersByIDs(ctx, family.MemberIDs)
}

// UpdateProfile overwrites the stored user with the same id
func (s *AuthService) UpdateProfile(ctx context.Context, user *models.User) error {
	err := s.userRepo.UpdateUser(ctx, user)
	if isRecordNotFound(err) {
		return notFound(MsgUserNotFound)
	}
	return err
}

// UpdateFamily overwrites the stored family with the same id
func (s *AuthService) UpdateFamily(ctx context.Context, family *models.Family) error {
	err := s.familyRepo.UpdateFamily(ctx, family)
	if isRecordNotFound(err) {
		return notFound(MsgFamilyNotFound)
	}
	return err
}

// SetPremium sets or clears the paid premium flag
func (s *AuthService) SetPremium(ctx context.Context, familyID string, premium bool) (*models.Family, error) {
	family, err := s.GetFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	family.IsPremium = premium
	if err := s.familyRepo.UpdateFamily(ctx, family); err != nil {
		return nil, err
	}
	s.log.Info().Str("family_id", familyID).Bool("premium", premium).Msg("premium flag updated")
	return family, nil
}

// IsEffectivelyPremium reports premium-or-trial for the family at the service clock
func (s *AuthService) IsEffectivelyPremium(family *models.Family) bool {
	return family.IsEffectivelyPremium(s.now())
}

// RequestPasswordReset verifies the family name and admin email and sends a
// notice. No reset token is issued.
func (s *AuthService) RequestPasswordReset(ctx context.Context, familyName, adminEmail string) error {
	family, err := s.familyRepo.GetFamilyByName(ctx, strings.TrimSpace(familyName))
	if err != nil {
		return err
	}
	if family == nil {
		return notFound(MsgFamilyNotFound)
	}

	admin, err := s.userRepo.GetUserByID(ctx, family.AdminID)
	if err != nil {
		return err
	}
	if admin == nil || !strings.EqualFold(admin.Email, strings.TrimSpace(adminEmail)) {
		return conflict(MsgResetInfoMismatch)
	}

	if s.notifier == nil {
		s.log.Info().Str("family_id", family.ID).Msg("password reset requested, no notifier configured")
		return nil
	}
	return s.notifier.SendPasswordResetNotice(ctx, admin.Email, admin.Name, family.Name)
}

// FamilyBirthdays lists the family's birthdays within the configured window
func (s *AuthService) FamilyBirthdays(ctx context.Context, familyID string) ([]models.Birthday, error) {
	members, err := s.GetFamilyMembers(ctx, familyID)
	if err != nil {
		return nil, err
	}
	return UpcomingBirthdays(members, s.now(), s.BirthdayWindowDays), nil
}

// UpcomingBirthdays returns members whose next birthday falls within
// windowDays of today, soonest first. A birthday today has DaysUntil 0.
func UpcomingBirthdays(members []models.User, today time.Time, windowDays int) []models.Birthday {
	today = today.UTC()
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	birthdays := []models.Birthday{}
	for _, m := range members {
		birth, err := models.ParseDate(m.BirthDate)
		if err != nil {
			continue
		}

		next := time.Date(start.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
		if next.Before(start) {
			next = time.Date(start.Year()+1, birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
		}

		days := int(next.Sub(start).Hours() / 24)
		if days > windowDays {
			continue
		}

		birthdays = append(birthdays, models.Birthday{
			User:         m,
			NextBirthday: next,
			DaysUntil:    days,
			TurningAge:   next.Year() - birth.Year(),
		})
	}

	sort.SliceStable(birthdays, func(i, j int) bool {
		return birthdays[i].DaysUntil < birthdays[j].DaysUntil
	})
	return birthdays
}

func (s *AuthService) normalizeProfile(p models.Profile) models.Profile {
	p.Name = strings.TrimSpace(p.Name)
	p.BirthDate = strings.TrimSpace(p.BirthDate)
	if strings.TrimSpace(p.Avatar) == "" {
		p.Avatar = s.DefaultAvatar
	}
	return p
}

func (s *AuthService) uniqueInviteCode(ctx context.Context) (string, error) {
	for i := 0; i < inviteCodeAttempts; i++ {
		code, err := credentials.GenerateInviteCode()
		if err != nil {
			return "", fmt.Errorf("failed to generate invite code: %w", err)
		}
		taken, err := s.familyRepo.GetFamilyByInviteCode(ctx, code)
		if err != nil {
			return "", err
		}
		if taken == nil {
			return code, nil
		}
	}
	return "", fmt.Errorf("failed to generate a unique invite code after %d attempts", inviteCodeAttempts)
}
