package auth_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/auth"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Suite")
}

// Mock repository for testing
type mockUserRepository struct {
	users       map[string]*auth.Credentials
	nextID      int64
	createError error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[string]*auth.Credentials),
		nextID: 1,
	}
}

func (m *mockUserRepository) CreateUser(email, passwordHash, role string) (int64, error) {
	if m.createError != nil {
		return 0, m.createError
	}
	if _, exists := m.users[email]; exists {
		return 0, gorm.ErrDuplicatedKey
	}
	id := m.nextID
	m.nextID++
	m.users[email] = &auth.Credentials{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}
	return id, nil
}

func (m *mockUserRepository) GetByEmail(email string) (*auth.Credentials, error) {
	creds, exists := m.users[email]
	if !exists {
		return nil, errors.New("user not found")
	}
	return creds, nil
}

var _ = Describe("Auth Service", func() {
	var (
		repo     *mockUserRepository
		tokenGen *auth.JWTTokenGenerator
		service  *auth.Service
	)

	BeforeEach(func() {
		repo = newMockUserRepository()
		tokenGen = auth.NewJWTTokenGenerator(
			"test-secret-that-is-long-enough-for-hs256",
			"asset-management-api",
			"asset-management-client",
			time.Hour,
		)
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = auth.NewService(repo, tokenGen, bcrypt.MinCost, logger)
	})

	Describe("Register", func() {
		It("creates an account with role User and issues a token", func() {
			resp, err := service.Register(auth.RegisterDTO{
				Email:    "newuser@company.com",
				Password: "secret123",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Token).NotTo(BeEmpty())
			Expect(resp.Role).To(Equal(auth.RoleUser))
			Expect(resp.UserID).To(BeNumerically(">", 0))
			Expect(resp.Email).To(Equal("newuser@company.com"))
		})

		It("normalizes the email to lowercase", func() {
			resp, err := service.Register(auth.RegisterDTO{
				Email:    "  MixedCase@Company.COM ",
				Password: "secret123",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Email).To(Equal("mixedcase@company.com"))
			_, exists := repo.users["mixedcase@company.com"]
			Expect(exists).To(BeTrue())
		})

		It("stores a bcrypt hash, never the raw password", func() {
			_, err := service.Register(auth.RegisterDTO{
				Email:    "hash@company.com",
				Password: "secret123",
			})
			Expect(err).NotTo(HaveOccurred())

			creds := repo.users["hash@company.com"]
			Expect(creds.PasswordHash).NotTo(Equal("secret123"))
			Expect(bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte("secret123"))).To(Succeed())
		})

		It("rejects a duplicate email", func() {
			_, err := service.Register(auth.RegisterDTO{
				Email:    "taken@company.com",
				Password: "secret123",
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Register(auth.RegisterDTO{
				Email:    "taken@company.com",
				Password: "another123",
			})
			Expect(err).To(Equal(internal.ErrDuplicateEmail))
		})

		It("treats emails differing only by case as duplicates", func() {
			_, err := service.Register(auth.RegisterDTO{
				Email:    "case@company.com",
				Password: "secret123",
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Register(auth.RegisterDTO{
				Email:    "CASE@company.com",
				Password: "secret123",
			})
			Expect(err).To(Equal(internal.ErrDuplicateEmail))
		})

		It("rejects a password shorter than six characters", func() {
			_, err := service.Register(auth.RegisterDTO{
				Email:    "short@company.com",
				Password: "abc",
			})
			Expect(err).To(HaveOccurred())
			Expect(err).To(BeAssignableToTypeOf(auth.ValidationError{}))
		})

		It("rejects an email without an @", func() {
			_, err := service.Register(auth.RegisterDTO{
				Email:    "not-an-email",
				Password: "secret123",
			})
			Expect(err).To(HaveOccurred())
			Expect(err).To(BeAssignableToTypeOf(auth.ValidationError{}))
		})
	})

	Describe("Authenticate", func() {
		BeforeEach(func() {
			_, err := service.Register(auth.RegisterDTO{
				Email:    "known@company.com",
				Password: "secret123",
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns a token for valid credentials", func() {
			resp, err := service.Authenticate(auth.LoginDTO{
				Email:    "known@company.com",
				Password: "secret123",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Token).NotTo(BeEmpty())
			Expect(resp.Email).To(Equal("known@company.com"))
		})

		It("accepts any email casing at login", func() {
			_, err := service.Authenticate(auth.LoginDTO{
				Email:    "KNOWN@Company.com",
				Password: "secret123",
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns the same error for unknown email and wrong password", func() {
			_, unknownErr := service.Authenticate(auth.LoginDTO{
				Email:    "ghost@company.com",
				Password: "secret123",
			})
			_, wrongErr := service.Authenticate(auth.LoginDTO{
				Email:    "known@company.com",
				Password: "wrongpass",
			})

			Expect(unknownErr).To(Equal(internal.ErrInvalidCredentials))
			Expect(wrongErr).To(Equal(internal.ErrInvalidCredentials))
		})
	})

	Describe("Token round trip", func() {
		It("validates a freshly issued token and recovers the identity", func() {
			resp, err := service.Register(auth.RegisterDTO{
				Email:    "claims@company.com",
				Password: "secret123",
			})
			Expect(err).NotTo(HaveOccurred())

			claims, err := service.ValidateToken(resp.Token)
			Expect(err).NotTo(HaveOccurred())

			user := auth.UserFromClaims(claims)
			Expect(user.ID).To(Equal(resp.UserID))
			Expect(user.Email).To(Equal("claims@company.com"))
			Expect(user.Role).To(Equal(auth.RoleUser))
			Expect(user.IsAdmin()).To(BeFalse())
		})

		It("rejects an expired token", func() {
			expiredGen := auth.NewJWTTokenGenerator(
				"test-secret-that-is-long-enough-for-hs256",
				"asset-management-api",
				"asset-management-client",
				time.Hour,
			)
			expiredGen.TokenTTL = -time.Minute

			token, err := expiredGen.GenerateToken(1, "old@company.com", auth.RoleUser)
			Expect(err).NotTo(HaveOccurred())

			_, err = expiredGen.ValidateToken(token)
			Expect(err).To(Equal(internal.ErrTokenExpired))
		})

		It("rejects a token signed with a different secret", func() {
			otherGen := auth.NewJWTTokenGenerator(
				"a-completely-different-secret-also-long",
				"asset-management-api",
				"asset-management-client",
				time.Hour,
			)
			token, err := otherGen.GenerateToken(1, "forged@company.com", auth.RoleAdmin)
			Expect(err).NotTo(HaveOccurred())

			_, err = tokenGen.ValidateToken(token)
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})

		It("rejects garbage input", func() {
			_, err := tokenGen.ValidateToken("not.a.token")
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})
	})
})
