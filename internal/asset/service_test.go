package asset_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/asset"
	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
)

func TestAsset(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Asset Suite")
}

// Mock repository for testing
type mockAssetRepository struct {
	assets      map[int64]*assetDatamodel.Asset
	bySerial    map[string]int64
	assignedTo  map[int64][]int64
	nextID      int64
	createError error
	getError    error
}

func newMockAssetRepository() *mockAssetRepository {
	return &mockAssetRepository{
		assets:     make(map[int64]*assetDatamodel.Asset),
		bySerial:   make(map[string]int64),
		assignedTo: make(map[int64][]int64),
		nextID:     1,
	}
}

func (m *mockAssetRepository) GetAll() ([]*assetDatamodel.Asset, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	rows := make([]*assetDatamodel.Asset, 0, len(m.assets))
	for _, row := range m.assets {
		rows = append(rows, row)
	}
	return rows, nil
}

func (m *mockAssetRepository) GetAvailable() ([]*assetDatamodel.Asset, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	var rows []*assetDatamodel.Asset
	for _, row := range m.assets {
		if row.Status == assetDatamodel.StatusAvailable {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (m *mockAssetRepository) GetAssignedToUser(userID int64) ([]*assetDatamodel.Asset, error) {
	var rows []*assetDatamodel.Asset
	for _, assetID := range m.assignedTo[userID] {
		if row, ok := m.assets[assetID]; ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (m *mockAssetRepository) GetByID(id int64) (*assetDatamodel.Asset, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	row, ok := m.assets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (m *mockAssetRepository) Create(row *assetDatamodel.Asset) error {
	if m.createError != nil {
		return m.createError
	}
	if _, exists := m.bySerial[row.SerialNumber]; exists {
		return gorm.ErrDuplicatedKey
	}
	row.ID = m.nextID
	m.nextID++
	m.assets[row.ID] = row
	m.bySerial[row.SerialNumber] = row.ID
	return nil
}

func (m *mockAssetRepository) ReviseDescription(row *assetDatamodel.Asset) error {
	existing, ok := m.assets[row.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if id, taken := m.bySerial[row.SerialNumber]; taken && id != row.ID {
		return gorm.ErrDuplicatedKey
	}
	delete(m.bySerial, existing.SerialNumber)
	m.bySerial[row.SerialNumber] = row.ID
	// status is not part of the update set
	row.Status = existing.Status
	m.assets[row.ID] = row
	return nil
}

func (m *mockAssetRepository) Delete(id int64) error {
	row, ok := m.assets[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.bySerial, row.SerialNumber)
	delete(m.assets, id)
	return nil
}

var _ = Describe("Asset Service", func() {
	var (
		repo    *mockAssetRepository
		service *asset.Service
	)

	newCreateDTO := func(serial string) asset.CreateAssetDTO {
		return asset.CreateAssetDTO{
			Name:         "MacBook Pro 16-inch",
			Category:     "Laptop",
			SerialNumber: serial,
			PurchaseDate: time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
		}
	}

	BeforeEach(func() {
		repo = newMockAssetRepository()
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = asset.NewService(repo, logger)
	})

	Describe("CreateAsset", func() {
		It("creates an asset defaulting to Available", func() {
			created, err := service.CreateAsset(newCreateDTO("MBP001"))

			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.Status).To(Equal(asset.StatusAvailable))
			Expect(created.IsAvailable()).To(BeTrue())
			Expect(created.CreatedAt).NotTo(BeZero())
		})

		It("honors an explicit initial status", func() {
			dto := newCreateDTO("MBP002")
			assigned := asset.StatusAssigned
			dto.Status = &assigned

			created, err := service.CreateAsset(dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Status).To(Equal(asset.StatusAssigned))
		})

		It("rejects an unknown initial status", func() {
			dto := newCreateDTO("MBP003")
			bad := "Broken"
			dto.Status = &bad

			_, err := service.CreateAsset(dto)
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("rejects a duplicate serial number", func() {
			_, err := service.CreateAsset(newCreateDTO("MBP001"))
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateAsset(newCreateDTO("MBP001"))
			Expect(err).To(Equal(internal.ErrDuplicateSerialNumber))
		})

		It("rejects missing required fields", func() {
			dto := newCreateDTO("MBP004")
			dto.Name = ""

			_, err := service.CreateAsset(dto)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ReviseAsset", func() {
		var existingID int64

		BeforeEach(func() {
			created, err := service.CreateAsset(newCreateDTO("MBP001"))
			Expect(err).NotTo(HaveOccurred())
			existingID = created.ID
			// simulate the approval engine having assigned it
			repo.assets[existingID].Status = assetDatamodel.StatusAssigned
		})

		It("updates descriptive fields without touching status", func() {
			updated, err := service.ReviseAsset(existingID, asset.UpdateAssetDTO{
				Name:         "MacBook Pro 16-inch (2023)",
				Category:     "Laptop",
				SerialNumber: "MBP001",
				PurchaseDate: time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("MacBook Pro 16-inch (2023)"))
			Expect(updated.Status).To(Equal(asset.StatusAssigned))
		})

		It("returns not found for a missing asset", func() {
			_, err := service.ReviseAsset(9999, asset.UpdateAssetDTO{
				Name:         "Ghost",
				Category:     "Laptop",
				SerialNumber: "GH000",
				PurchaseDate: time.Now(),
			})
			Expect(err).To(Equal(internal.ErrAssetNotFound))
		})

		It("rejects changing the serial number to one already taken", func() {
			_, err := service.CreateAsset(newCreateDTO("DXP002"))
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ReviseAsset(existingID, asset.UpdateAssetDTO{
				Name:         "MacBook Pro 16-inch",
				Category:     "Laptop",
				SerialNumber: "DXP002",
				PurchaseDate: time.Now(),
			})
			Expect(err).To(Equal(internal.ErrDuplicateSerialNumber))
		})
	})

	Describe("DeleteAsset", func() {
		It("deletes an existing asset", func() {
			created, err := service.CreateAsset(newCreateDTO("MBP001"))
			Expect(err).NotTo(HaveOccurred())

			Expect(service.DeleteAsset(created.ID)).To(Succeed())
			_, err = service.GetAssetByID(created.ID)
			Expect(err).To(Equal(internal.ErrAssetNotFound))
		})

		It("returns not found for a missing asset", func() {
			Expect(service.DeleteAsset(42)).To(Equal(internal.ErrAssetNotFound))
		})
	})

	Describe("GetAvailableAssets", func() {
		It("filters out assigned assets", func() {
			first, err := service.CreateAsset(newCreateDTO("MBP001"))
			Expect(err).NotTo(HaveOccurred())
			_, err = service.CreateAsset(newCreateDTO("DXP002"))
			Expect(err).NotTo(HaveOccurred())

			repo.assets[first.ID].Status = assetDatamodel.StatusAssigned

			available, err := service.GetAvailableAssets()
			Expect(err).NotTo(HaveOccurred())
			Expect(available).To(HaveLen(1))
			Expect(available[0].SerialNumber).To(Equal("DXP002"))
		})
	})

	Describe("GetAssetImage", func() {
		It("returns stored bytes with the recorded content type", func() {
			dto := newCreateDTO("MBP001")
			dto.ImageData = []byte{0x89, 0x50, 0x4e, 0x47}
			contentType := "image/png"
			dto.ImageContentType = &contentType

			created, err := service.CreateAsset(dto)
			Expect(err).NotTo(HaveOccurred())

			data, ct, err := service.GetAssetImage(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(data).To(Equal([]byte{0x89, 0x50, 0x4e, 0x47}))
			Expect(ct).To(Equal("image/png"))
		})

		It("falls back to image/jpeg when no content type was recorded", func() {
			dto := newCreateDTO("MBP002")
			dto.ImageData = []byte{0xff, 0xd8}

			created, err := service.CreateAsset(dto)
			Expect(err).NotTo(HaveOccurred())

			_, ct, err := service.GetAssetImage(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(ct).To(Equal("image/jpeg"))
		})

		It("returns image not found when the asset has no image", func() {
			created, err := service.CreateAsset(newCreateDTO("MBP003"))
			Expect(err).NotTo(HaveOccurred())

			_, _, err = service.GetAssetImage(created.ID)
			Expect(err).To(Equal(internal.ErrImageNotFound))
		})

		It("returns asset not found for a missing asset", func() {
			_, _, err := service.GetAssetImage(404)
			Expect(err).To(Equal(internal.ErrAssetNotFound))
		})
	})
})
