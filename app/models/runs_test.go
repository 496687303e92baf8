package models_test

import (
	"time"

	"github.com/antonisbaro/Algorithmic-Trading-Time-Travel/app/models"
)

func (suite *ModelsTestSuite) TestCreateRun() {
	suite.NotZero(suite.RunID)

	rframe := models.GetRunFrame(suite.RunID)
	suite.NotNil(rframe.Run)
	suite.Equal("small", rframe.Run.Scenario)
	suite.Equal("124.54", rframe.Run.FinalCash)
	suite.Equal(2, rframe.Run.MoveCount)
	suite.True(rframe.Run.Valid)
}

func (suite *ModelsTestSuite) TestGetRunFrameMovesInCommitOrder() {
	rframe := models.GetRunFrame(suite.RunID)
	suite.Len(rframe.Moves, 2)

	suite.Equal("AAPL", rframe.Moves[0].Symbol)
	suite.Equal("buy-low", rframe.Moves[0].BuyAction)
	suite.Equal(int64(11), rframe.Moves[0].Shares)
	suite.Equal("9", rframe.Moves[0].BuyPrice)

	suite.Equal("MSFT", rframe.Moves[1].Symbol)
	suite.Equal("buy-open", rframe.Moves[1].BuyAction)

	// unknown id gives an empty frame
	rframe = models.GetRunFrame(999999)
	suite.Nil(rframe.Run)
	suite.Empty(rframe.Moves)
}

func (suite *ModelsTestSuite) TestGetRunsFrame() {
	run := models.NewRunFromLedger("large", time.Now().Add(time.Second), suite.Led, false)
	suite.Nil(run.Create())
	defer models.DeleteRun(run.ID)

	rframe := models.GetRunsFrame(10)
	suite.Len(rframe.Runs, 2)
	// ascending start time
	suite.Equal("small", rframe.Runs[0].Scenario)
	suite.Equal("large", rframe.Runs[1].Scenario)

	rframe = models.GetRunsFrame(1)
	suite.Len(rframe.Runs, 1)
	suite.Equal("large", rframe.Runs[0].Scenario)
}

func (suite *ModelsTestSuite) TestDeleteRun() {
	models.DeleteRun(suite.RunID)

	rframe := models.GetRunFrame(suite.RunID)
	suite.Nil(rframe.Run)
	suite.Empty(rframe.Moves)
}

func (suite *ModelsTestSuite) TestLastRunTime() {
	last, err := models.LastRunTime()
	suite.Nil(err)
	suite.NotZero(last)

	run := models.NewRunFromLedger("large", time.Now().Add(time.Minute), suite.Led, true)
	suite.Nil(run.Create())
	defer models.DeleteRun(run.ID)

	next, err := models.LastRunTime()
	suite.Nil(err)
	suite.Greater(next, last)
}
