package models_test

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/antonisbaro/Algorithmic-Trading-Time-Travel/app/models"
	"github.com/antonisbaro/Algorithmic-Trading-Time-Travel/trading"
)

type ModelsTestSuite struct {
	suite.Suite
	Led   *trading.Ledger
	RunID int
}

func testLedger() *trading.Ledger {
	led := trading.NewLedger(decimal.RequireFromString("100"), 10)
	led.Commit(trading.Candidate{
		Move: trading.Move{
			Symbol:    "AAPL",
			Date:      time.Date(2005, time.March, 1, 0, 0, 0, 0, time.UTC),
			Kind:      trading.BuyLowSellClose,
			Shares:    11,
			BuyPrice:  decimal.RequireFromString("9.00"),
			SellPrice: decimal.RequireFromString("11.00"),
			FeeRate:   decimal.RequireFromString("0.01"),
		},
	})
	led.Commit(trading.Candidate{
		Move: trading.Move{
			Symbol:    "MSFT",
			Date:      time.Date(2005, time.March, 2, 0, 0, 0, 0, time.UTC),
			Kind:      trading.BuyOpenSellHigh,
			Shares:    3,
			BuyPrice:  decimal.RequireFromString("20.00"),
			SellPrice: decimal.RequireFromString("22.00"),
			FeeRate:   decimal.RequireFromString("0.01"),
		},
	})
	return led
}

func (suite *ModelsTestSuite) SetupSuite() {
	logrus.SetLevel(logrus.ErrorLevel)
	models.DB, _ = gorm.Open(sqlite.Open("models_test.sqlite3"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})

	models.DB.AutoMigrate(
		&models.Run{},
		&models.MoveRow{},
	)

	suite.Led = testLedger()
}

func (suite *ModelsTestSuite) SetupTest() {
	run := models.NewRunFromLedger("small", time.Now(), suite.Led, true)
	suite.Nil(run.Create())
	suite.RunID = run.ID

	suite.Nil(models.NewMoveRowsFromMoves(run.ID, suite.Led.Moves).Create())
}

func (suite *ModelsTestSuite) TearDownTest() {
	models.DeleteRun(suite.RunID)
}

func (suite *ModelsTestSuite) TearDownSuite() {
	os.Remove("models_test.sqlite3")
}

func TestModels(t *testing.T) {
	suite.Run(t, new(ModelsTestSuite))
}
