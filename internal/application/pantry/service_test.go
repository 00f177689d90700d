package pantry

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/nourishly/v1/internal/domain/pantry"
	"github.com/nourishly/v1/internal/domain/profile"
	"github.com/nourishly/v1/internal/ports/inbound"
	"github.com/nourishly/v1/internal/ports/outbound"
	apperrors "github.com/nourishly/v1/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// fakeProfileRepository keeps the profile in memory and counts saves.
type fakeProfileRepository struct {
	profile *profile.Profile
	saveErr error
	saves   int
}

func (f *fakeProfileRepository) Load(ctx context.Context) (*profile.Profile, error) {
	return f.profile, nil
}

func (f *fakeProfileRepository) Save(ctx context.Context, p *profile.Profile) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.profile = p
	f.saves++
	return nil
}

// fakeAIService delegates to a stubbed identify function; release gates
// the call so tests can hold a scan in flight.
type fakeAIService struct {
	identify func(ctx context.Context) (*pantry.ItemAnalysis, error)
	started  chan struct{}
	release  chan struct{}
}

func (f *fakeAIService) IdentifyPantryItem(ctx context.Context, image []byte, lang profile.Language) (*pantry.ItemAnalysis, error) {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.identify(ctx)
}

func (f *fakeAIService) GenerateRecipe(ctx context.Context, ingredients []string, constraints outbound.RecipeConstraints) (*outbound.RecipeResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeAIService) StreamChat(ctx context.Context, history []outbound.ChatTurn, message string, lang profile.Language) (<-chan outbound.ChatDelta, error) {
	return nil, fmt.Errorf("not implemented")
}

// codeLabeler echoes codes back, keeping label assertions trivial.
type codeLabeler struct{}

func (codeLabeler) UnitLabel(unit pantry.Unit, lang profile.Language) string {
	return string(unit)
}

func (codeLabeler) CategoryLabel(category pantry.Category, lang profile.Language) string {
	return string(category)
}

type PantryServiceTestSuite struct {
	suite.Suite
	repo    *fakeProfileRepository
	ai      *fakeAIService
	service inbound.PantryService
	now     time.Time
}

func (suite *PantryServiceTestSuite) SetupTest() {
	suite.now = time.Date(2025, 10, 24, 9, 0, 0, 0, time.UTC)
	suite.repo = &fakeProfileRepository{profile: profile.Default(suite.now)}
	suite.ai = &fakeAIService{
		identify: func(ctx context.Context) (*pantry.ItemAnalysis, error) {
			return &pantry.ItemAnalysis{Name: "Almond Milk", Quantity: 1, Unit: pantry.UnitLiter, Category: pantry.CategoryDairy}, nil
		},
	}

	svc := NewPantryService(suite.repo, suite.ai, codeLabeler{}, zap.NewNop()).(*PantryService)
	svc.now = func() time.Time { return suite.now }
	suite.service = svc
}

func (suite *PantryServiceTestSuite) TestAddItem() {
	suite.Run("ImplicitCategory_ShouldUseKeywordSuggestion", func() {
		dto, err := suite.service.AddItem(context.Background(), inbound.AddItemCommand{
			Name:     "Fresh Whole Milk",
			Quantity: "1",
			Unit:     pantry.UnitLiter,
		})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), pantry.CategoryDairy, dto.Category)
	})

	suite.Run("ExplicitCategory_ShouldNotBeOverwritten", func() {
		dto, err := suite.service.AddItem(context.Background(), inbound.AddItemCommand{
			Name:             "Coconut Milk",
			Quantity:         "1",
			Unit:             pantry.UnitMilliliter,
			Category:         pantry.CategoryPantry,
			CategoryExplicit: true,
		})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), pantry.CategoryPantry, dto.Category)
	})

	suite.Run("EmptyQuantity_ShouldDefaultToOne", func() {
		dto, err := suite.service.AddItem(context.Background(), inbound.AddItemCommand{
			Name: "Honey",
			Unit: pantry.UnitPiece,
		})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "1", dto.Quantity)
	})

	suite.Run("NewItem_ShouldBeFirstInStorageOrder", func() {
		before := len(suite.repo.profile.Pantry)

		dto, err := suite.service.AddItem(context.Background(), inbound.AddItemCommand{
			Name:     "Lentils",
			Quantity: "2",
			Unit:     pantry.UnitPack,
		})

		require.NoError(suite.T(), err)
		require.Len(suite.T(), suite.repo.profile.Pantry, before+1)
		assert.Equal(suite.T(), dto.ID, suite.repo.profile.Pantry[0].ID)
	})

	suite.Run("EmptyName_ShouldReturnValidationError", func() {
		_, err := suite.service.AddItem(context.Background(), inbound.AddItemCommand{Quantity: "1"})

		assert.Equal(suite.T(), apperrors.CodeValidationFailed, apperrors.GetCode(err))
	})

	suite.Run("PersistenceFailure_ShouldStillReturnItem", func() {
		suite.repo.saveErr = fmt.Errorf("disk full")

		dto, err := suite.service.AddItem(context.Background(), inbound.AddItemCommand{
			Name:     "Oats",
			Quantity: "1",
			Unit:     pantry.UnitPack,
		})

		require.NoError(suite.T(), err)
		assert.NotEmpty(suite.T(), dto.ID)
	})
}

func (suite *PantryServiceTestSuite) TestUpdateItem() {
	suite.Run("ExistingItem_ShouldReplaceWholesale", func() {
		dto, err := suite.service.UpdateItem(context.Background(), inbound.UpdateItemCommand{
			ID:       "p1",
			Name:     "Skyr",
			Quantity: "2",
			Unit:     pantry.UnitPack,
			Category: pantry.CategoryDairy,
		})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Skyr", dto.Name)
		assert.Equal(suite.T(), "Skyr", suite.repo.profile.Pantry[0].Name)
		// A replacement without an expiry clears the stored one.
		assert.Nil(suite.T(), suite.repo.profile.Pantry[0].ExpiryDate)
	})

	suite.Run("MissingItem_ShouldReturnNotFound", func() {
		_, err := suite.service.UpdateItem(context.Background(), inbound.UpdateItemCommand{
			ID:       "missing",
			Name:     "Ghost",
			Quantity: "1",
		})

		assert.Equal(suite.T(), apperrors.CodeItemNotFound, apperrors.GetCode(err))
	})
}

func (suite *PantryServiceTestSuite) TestDeleteItem() {
	err := suite.service.DeleteItem(context.Background(), "p1")

	require.NoError(suite.T(), err)
	assert.Len(suite.T(), suite.repo.profile.Pantry, 3)

	// Missing ids stay a no-op.
	require.NoError(suite.T(), suite.service.DeleteItem(context.Background(), "p1"))
	assert.Len(suite.T(), suite.repo.profile.Pantry, 3)
}

func (suite *PantryServiceTestSuite) TestDecrementItem() {
	suite.Run("QuantityAboveOne_ShouldDecrementAndPersist", func() {
		// p2 is Chicken Breast at quantity 500.
		result, err := suite.service.DecrementItem(context.Background(), "p2", nil)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), pantry.DecrementApplied, result.Outcome)
		assert.False(suite.T(), result.Removed)
		require.NotNil(suite.T(), result.Item)
		assert.Equal(suite.T(), "499", result.Item.Quantity)
	})

	suite.Run("DepletedWithoutConfirmation_ShouldKeepItem", func() {
		result, err := suite.service.DecrementItem(context.Background(), "p1", nil)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), pantry.DecrementDepleted, result.Outcome)
		assert.False(suite.T(), result.Removed)
		assert.Len(suite.T(), suite.repo.profile.Pantry, 4)
	})

	suite.Run("DepletedWithDenial_ShouldKeepItem", func() {
		result, err := suite.service.DecrementItem(context.Background(), "p1", func() bool { return false })

		require.NoError(suite.T(), err)
		assert.False(suite.T(), result.Removed)
		assert.Len(suite.T(), suite.repo.profile.Pantry, 4)
	})

	suite.Run("DepletedWithConfirmation_ShouldRemoveItem", func() {
		result, err := suite.service.DecrementItem(context.Background(), "p1", func() bool { return true })

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), pantry.DecrementDepleted, result.Outcome)
		assert.True(suite.T(), result.Removed)
		assert.Len(suite.T(), suite.repo.profile.Pantry, 3)
	})

	suite.Run("MissingItem_ShouldReturnNotFound", func() {
		_, err := suite.service.DecrementItem(context.Background(), "missing", nil)

		assert.Equal(suite.T(), apperrors.CodeItemNotFound, apperrors.GetCode(err))
	})
}

func (suite *PantryServiceTestSuite) TestInventoryView() {
	view, err := suite.service.InventoryView(context.Background(), inbound.ViewQuery{})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 4, view.Total)
	// Spinach (expired), Chicken (2d) and Yogurt (3d) are urgent; Pasta
	// stays grouped.
	assert.Len(suite.T(), view.ExpiringSoon, 3)
	require.Len(suite.T(), view.Groups, 1)
	assert.Equal(suite.T(), pantry.CategoryPantry, view.Groups[0].Category)
}

func (suite *PantryServiceTestSuite) TestScanItem() {
	suite.Run("IdentifiedItem_ShouldReturnAnalysis", func() {
		result, err := suite.service.ScanItem(context.Background(), []byte("jpeg"), profile.LanguageEnglish)

		require.NoError(suite.T(), err)
		assert.True(suite.T(), result.Identified)
		require.NotNil(suite.T(), result.Analysis)
		assert.Equal(suite.T(), "Almond Milk", result.Analysis.Name)
	})

	suite.Run("UnidentifiedItem_ShouldBeRecoverable", func() {
		suite.ai.identify = func(ctx context.Context) (*pantry.ItemAnalysis, error) {
			return nil, nil
		}

		result, err := suite.service.ScanItem(context.Background(), []byte("jpeg"), profile.LanguageEnglish)

		require.NoError(suite.T(), err)
		assert.False(suite.T(), result.Identified)
		assert.Nil(suite.T(), result.Analysis)
	})

	suite.Run("BackendFailure_ShouldReturnRecognitionError", func() {
		suite.ai.identify = func(ctx context.Context) (*pantry.ItemAnalysis, error) {
			return nil, fmt.Errorf("model unavailable")
		}

		_, err := suite.service.ScanItem(context.Background(), []byte("jpeg"), profile.LanguageEnglish)

		assert.Equal(suite.T(), apperrors.CodeRecognitionFailed, apperrors.GetCode(err))
	})

	suite.Run("ConcurrentScan_ShouldFailFast", func() {
		suite.ai.identify = func(ctx context.Context) (*pantry.ItemAnalysis, error) {
			return nil, nil
		}
		suite.ai.started = make(chan struct{}, 1)
		suite.ai.release = make(chan struct{})

		done := make(chan error, 1)
		go func() {
			_, err := suite.service.ScanItem(context.Background(), []byte("jpeg"), profile.LanguageEnglish)
			done <- err
		}()

		<-suite.ai.started
		_, err := suite.service.ScanItem(context.Background(), []byte("jpeg"), profile.LanguageEnglish)
		assert.Equal(suite.T(), apperrors.CodeScanInFlight, apperrors.GetCode(err))

		close(suite.ai.release)
		require.NoError(suite.T(), <-done)

		// The slot frees up once the first scan finishes.
		suite.ai.started = nil
		suite.ai.release = nil
		_, err = suite.service.ScanItem(context.Background(), []byte("jpeg"), profile.LanguageEnglish)
		assert.NoError(suite.T(), err)
	})
}

func TestPantryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PantryServiceTestSuite))
}
