package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/asset-management/internal/asset"
	assetPostgres "github.com/frahmantamala/asset-management/internal/asset/postgres"
	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
	requestDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/assetrequest"
	userDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/user"
)

func TestAssetPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Asset Postgres Suite")
}

var _ = Describe("Asset Repository", func() {
	var (
		db   *gorm.DB
		repo asset.RepositoryAPI
	)

	newAsset := func(serial, status string) *assetDatamodel.Asset {
		now := time.Now()
		return &assetDatamodel.Asset{
			Name:         "MacBook Pro 16-inch",
			Category:     "Laptop",
			SerialNumber: serial,
			PurchaseDate: time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
			Status:       status,
			CreatedAt:    now,
			UpdatedAt:    &now,
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&userDatamodel.User{},
			&assetDatamodel.Asset{},
			&requestDatamodel.AssetRequest{},
		)
		Expect(err).NotTo(HaveOccurred())

		repo = assetPostgres.NewRepository(db)
	})

	Describe("Create", func() {
		It("inserts a new asset", func() {
			row := newAsset("MBP001", assetDatamodel.StatusAvailable)
			Expect(repo.Create(row)).To(Succeed())
			Expect(row.ID).To(BeNumerically(">", 0))
		})

		It("rejects a duplicate serial number", func() {
			Expect(repo.Create(newAsset("MBP001", assetDatamodel.StatusAvailable))).To(Succeed())

			err := repo.Create(newAsset("MBP001", assetDatamodel.StatusAvailable))
			Expect(err).To(MatchError(gorm.ErrDuplicatedKey))
		})
	})

	Describe("ReviseDescription", func() {
		It("updates descriptive columns but never status", func() {
			row := newAsset("MBP001", assetDatamodel.StatusAssigned)
			Expect(repo.Create(row)).To(Succeed())

			row.Name = "MacBook Pro 16-inch (2023)"
			row.Status = assetDatamodel.StatusAvailable // must be ignored
			Expect(repo.ReviseDescription(row)).To(Succeed())

			stored, err := repo.GetByID(row.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Name).To(Equal("MacBook Pro 16-inch (2023)"))
			Expect(stored.Status).To(Equal(assetDatamodel.StatusAssigned))
		})
	})

	Describe("GetAvailable", func() {
		It("returns only available assets", func() {
			Expect(repo.Create(newAsset("MBP001", assetDatamodel.StatusAvailable))).To(Succeed())
			Expect(repo.Create(newAsset("DXP002", assetDatamodel.StatusAssigned))).To(Succeed())

			rows, err := repo.GetAvailable()
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].SerialNumber).To(Equal("MBP001"))
		})
	})

	Describe("GetAssignedToUser", func() {
		It("resolves holdings through approved requests", func() {
			user := &userDatamodel.User{
				Email:        "user@company.com",
				PasswordHash: "hash",
				Role:         userDatamodel.RoleUser,
				CreatedAt:    time.Now(),
			}
			Expect(db.Create(user).Error).To(Succeed())

			held := newAsset("MBP001", assetDatamodel.StatusAssigned)
			Expect(repo.Create(held)).To(Succeed())
			pendingOnly := newAsset("DXP002", assetDatamodel.StatusAvailable)
			Expect(repo.Create(pendingOnly)).To(Succeed())

			processed := time.Now()
			Expect(db.Create(&requestDatamodel.AssetRequest{
				UserID:        user.ID,
				AssetID:       held.ID,
				Status:        requestDatamodel.StatusApproved,
				RequestDate:   time.Now(),
				ProcessedDate: &processed,
			}).Error).To(Succeed())
			Expect(db.Create(&requestDatamodel.AssetRequest{
				UserID:      user.ID,
				AssetID:     pendingOnly.ID,
				Status:      requestDatamodel.StatusPending,
				RequestDate: time.Now(),
			}).Error).To(Succeed())

			rows, err := repo.GetAssignedToUser(user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].SerialNumber).To(Equal("MBP001"))
		})
	})

	Describe("Delete", func() {
		It("removes the row", func() {
			row := newAsset("MBP001", assetDatamodel.StatusAvailable)
			Expect(repo.Create(row)).To(Succeed())

			Expect(repo.Delete(row.ID)).To(Succeed())
			_, err := repo.GetByID(row.ID)
			Expect(err).To(MatchError(gorm.ErrRecordNotFound))
		})
	})
})
