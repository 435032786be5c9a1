package company

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/company"
	"github.com/harborstay/backend/internal/domain/identity"
	"github.com/harborstay/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AllowedLogoContentTypes is the whitelist for logo uploads. SVG is
// excluded: it can carry scripts and the logo is served to browsers.
var AllowedLogoContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ObjectStorage defines the interface for object storage operations,
// implemented by the infrastructure layer (S3 compatible).
type ObjectStorage interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)

	// PublicURL returns the stable, non-expiring URL for an object
	PublicURL(storageKey string) string
}

// CompanyServiceConfig holds configuration for the company service
type CompanyServiceConfig struct {
	// UploadURLExpiry is the duration for which logo upload URLs are valid
	UploadURLExpiry time.Duration
}

// DefaultCompanyServiceConfig returns the default configuration
func DefaultCompanyServiceConfig() CompanyServiceConfig {
	return CompanyServiceConfig{
		UploadURLExpiry: 15 * time.Minute,
	}
}

// CompanyService handles company settings and member administration for
// the company's own admins
type CompanyService struct {
	companyRepo      company.CompanyRepository
	subscriptionRepo company.SubscriptionRepository
	membershipRepo   identity.MembershipRepository
	userRepo         identity.UserRepository
	storage          ObjectStorage
	config           CompanyServiceConfig
	logger           *zap.Logger
}

// NewCompanyService creates a new company service
func NewCompanyService(
	companyRepo company.CompanyRepository,
	subscriptionRepo company.SubscriptionRepository,
	membershipRepo identity.MembershipRepository,
	userRepo identity.UserRepository,
	storage ObjectStorage,
	logger *zap.Logger,
) *CompanyService {
	return &CompanyService{
		companyRepo:      companyRepo,
		subscriptionRepo: subscriptionRepo,
		membershipRepo:   membershipRepo,
		userRepo:         userRepo,
		storage:          storage,
		config:           DefaultCompanyServiceConfig(),
		logger:           logger,
	}
}

// SetConfig sets the service configuration
func (s *CompanyService) SetConfig(config CompanyServiceConfig) {
	s.config = config
}

// CreateCompany creates a company owned by the calling user: the company
// itself, a free subscription and a company admin membership for the
// owner. A user with an existing membership cannot create another
// company.
func (s *CompanyService) CreateCompany(ctx context.Context, ownerID uuid.UUID, ownerEmail string, input CreateCompanyInput) (*CompanyResponse, error) {
	existing, err := s.membershipRepo.FindByUserID(ctx, ownerID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_MEMBER", "User already belongs to a company")
	}

	comp, err := company.NewCompany(input.Name, input.Address, input.Currency)
	if err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, comp); err != nil {
		return nil, err
	}

	sub, err := company.NewFreeSubscription(comp.ID)
	if err != nil {
		return nil, err
	}
	if err := s.subscriptionRepo.Save(ctx, sub); err != nil {
		return nil, err
	}

	membership, err := identity.NewMembership(comp.ID, ownerID, ownerEmail, identity.RoleCompanyAdmin)
	if err != nil {
		return nil, err
	}
	if err := s.membershipRepo.Save(ctx, membership); err != nil {
		return nil, err
	}

	s.logger.Info("Company created",
		zap.String("company_id", comp.ID.String()),
		zap.String("owner_id", ownerID.String()))

	response := ToCompanyResponse(comp, sub, time.Now())
	return &response, nil
}

// GetCompany returns the company with its subscription summary
func (s *CompanyService) GetCompany(ctx context.Context, companyID uuid.UUID) (*CompanyResponse, error) {
	comp, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("COMPANY_NOT_FOUND", "Company not found")
		}
		return nil, err
	}

	sub, err := s.subscriptionRepo.FindByCompanyID(ctx, companyID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	response := ToCompanyResponse(comp, sub, time.Now())
	return &response, nil
}

// UpdateSettings updates the company's name, address and currency label
func (s *CompanyService) UpdateSettings(ctx context.Context, companyID uuid.UUID, input UpdateSettingsInput) (*CompanyResponse, error) {
	comp, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("COMPANY_NOT_FOUND", "Company not found")
		}
		return nil, err
	}

	if err := comp.UpdateSettings(input.Name, input.Address, input.Currency); err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, comp); err != nil {
		return nil, err
	}

	sub, err := s.subscriptionRepo.FindByCompanyID(ctx, companyID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	response := ToCompanyResponse(comp, sub, time.Now())
	return &response, nil
}

// InitiateLogoUpload validates the request and returns a presigned
// upload URL for the new logo
func (s *CompanyService) InitiateLogoUpload(ctx context.Context, companyID uuid.UUID, input InitiateLogoUploadInput) (*InitiateLogoUploadResponse, error) {
	if _, err := s.companyRepo.FindByID(ctx, companyID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("COMPANY_NOT_FOUND", "Company not found")
		}
		return nil, err
	}

	contentType := strings.ToLower(input.ContentType)
	if !AllowedLogoContentTypes[contentType] {
		return nil, shared.NewDomainError("DISALLOWED_CONTENT_TYPE",
			fmt.Sprintf("Content type '%s' is not allowed for logos", input.ContentType))
	}

	storageKey := logoStorageKey(companyID, input.FileName)

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, contentType, s.config.UploadURLExpiry)
	if err != nil {
		s.logger.Error("Failed to generate logo upload URL",
			zap.String("company_id", companyID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("UPLOAD_URL_FAILED", "Failed to generate upload URL")
	}

	return &InitiateLogoUploadResponse{
		StorageKey: storageKey,
		UploadURL:  uploadURL,
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmLogoUpload verifies the uploaded object exists and records its
// public URL on the company. The previous logo object, if any, is
// deleted best effort.
func (s *CompanyService) ConfirmLogoUpload(ctx context.Context, companyID uuid.UUID, storageKey string) (*CompanyResponse, error) {
	comp, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("COMPANY_NOT_FOUND", "Company not found")
		}
		return nil, err
	}

	if !strings.HasPrefix(storageKey, logoKeyPrefix(companyID)) {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key does not belong to this company")
	}

	exists, err := s.storage.ObjectExists(ctx, storageKey)
	if err != nil {
		return nil, shared.NewDomainError("STORAGE_CHECK_FAILED", "Failed to verify upload")
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND",
			"File not found in storage. Please upload the file first.")
	}

	previous := comp.LogoURL

	if err := comp.SetLogoURL(s.storage.PublicURL(storageKey)); err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, comp); err != nil {
		return nil, err
	}

	if previousKey, ok := storageKeyFromURL(previous, companyID); ok && previousKey != storageKey {
		if err := s.storage.DeleteObject(ctx, previousKey); err != nil {
			s.logger.Warn("Failed to delete previous logo",
				zap.String("company_id", companyID.String()),
				zap.String("storage_key", previousKey),
				zap.Error(err))
		}
	}

	sub, err := s.subscriptionRepo.FindByCompanyID(ctx, companyID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	response := ToCompanyResponse(comp, sub, time.Now())
	return &response, nil
}

// ListMembers returns all members and pending invites of the company
func (s *CompanyService) ListMembers(ctx context.Context, companyID uuid.UUID) ([]MemberResponse, error) {
	memberships, err := s.membershipRepo.FindByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return ToMemberResponses(memberships), nil
}

// InviteMember adds a user to the company by email. When an account with
// that email already exists the membership is created active; otherwise
// a pending invite is recorded and bound at first sign-in.
func (s *CompanyService) InviteMember(ctx context.Context, companyID uuid.UUID, input InviteMemberInput) (*MemberResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	var membership *identity.Membership
	if user != nil {
		existing, err := s.membershipRepo.FindByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, shared.NewDomainError("ALREADY_MEMBER", "User already belongs to a company")
		}
		membership, err = identity.NewMembership(companyID, user.ID, email, input.Role)
		if err != nil {
			return nil, err
		}
	} else {
		existing, err := s.membershipRepo.FindInviteByEmail(ctx, companyID, email)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, shared.NewDomainError("ALREADY_INVITED", "An invite for this email is already pending")
		}
		membership, err = identity.NewInvitedMembership(companyID, email, input.Role)
		if err != nil {
			return nil, err
		}
	}

	if err := s.membershipRepo.Save(ctx, membership); err != nil {
		return nil, err
	}

	s.logger.Info("Member invited",
		zap.String("company_id", companyID.String()),
		zap.String("email", email),
		zap.String("role", string(membership.Role)))

	responses := ToMemberResponses([]identity.Membership{*membership})
	return &responses[0], nil
}

// RemoveMember removes a member or revokes a pending invite. The last
// company admin cannot be removed.
func (s *CompanyService) RemoveMember(ctx context.Context, companyID, membershipID uuid.UUID) error {
	membership, err := s.findCompanyMembership(ctx, companyID, membershipID)
	if err != nil {
		return err
	}

	if membership.Role == identity.RoleCompanyAdmin && membership.IsActive() {
		admins, err := s.countActiveAdmins(ctx, companyID)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return shared.NewDomainError("LAST_ADMIN", "Cannot remove the last company admin")
		}
	}

	return s.membershipRepo.Delete(ctx, membershipID)
}

// ChangeMemberRole changes a member's role. Demoting the last company
// admin is rejected.
func (s *CompanyService) ChangeMemberRole(ctx context.Context, companyID uuid.UUID, input ChangeMemberRoleInput) (*MemberResponse, error) {
	membership, err := s.findCompanyMembership(ctx, companyID, input.MembershipID)
	if err != nil {
		return nil, err
	}

	if membership.Role == identity.RoleCompanyAdmin && input.Role != identity.RoleCompanyAdmin && membership.IsActive() {
		admins, err := s.countActiveAdmins(ctx, companyID)
		if err != nil {
			return nil, err
		}
		if admins <= 1 {
			return nil, shared.NewDomainError("LAST_ADMIN", "Cannot demote the last company admin")
		}
	}

	if err := membership.ChangeRole(input.Role); err != nil {
		return nil, err
	}
	if err := s.membershipRepo.Save(ctx, membership); err != nil {
		return nil, err
	}

	responses := ToMemberResponses([]identity.Membership{*membership})
	return &responses[0], nil
}

func (s *CompanyService) findCompanyMembership(ctx context.Context, companyID, membershipID uuid.UUID) (*identity.Membership, error) {
	membership, err := s.membershipRepo.FindByID(ctx, membershipID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("MEMBER_NOT_FOUND", "Member not found")
		}
		return nil, err
	}
	if membership.CompanyID != companyID {
		return nil, shared.NewDomainError("MEMBER_NOT_FOUND", "Member not found")
	}
	return membership, nil
}

func (s *CompanyService) countActiveAdmins(ctx context.Context, companyID uuid.UUID) (int, error) {
	memberships, err := s.membershipRepo.FindByCompany(ctx, companyID)
	if err != nil {
		return 0, err
	}
	admins := 0
	for _, m := range memberships {
		if m.Role == identity.RoleCompanyAdmin && m.IsActive() {
			admins++
		}
	}
	return admins, nil
}

func logoKeyPrefix(companyID uuid.UUID) string {
	return fmt.Sprintf("companies/%s/logo/", companyID.String())
}

func logoStorageKey(companyID uuid.UUID, fileName string) string {
	ext := filepath.Ext(fileName)
	return logoKeyPrefix(companyID) + uuid.New().String() + ext
}

// storageKeyFromURL recovers the storage key from a stored logo URL so
// the superseded object can be cleaned up
func storageKeyFromURL(logoURL string, companyID uuid.UUID) (string, bool) {
	prefix := logoKeyPrefix(companyID)
	idx := strings.Index(logoURL, prefix)
	if idx < 0 {
		return "", false
	}
	return logoURL[idx:], true
}
