package rating_test

import (
	"testing"
	"time"

	"github.com/okian/edgefinder/internal/domain/model"
	"github.com/okian/edgefinder/internal/domain/rating"
	. "github.com/smartystreets/goconvey/convey"
)

func closedGame(id string, day int, home, away, hs, as string) model.Game {
	return model.Game{
		ID:        id,
		Status:    model.StatusClosed,
		Scheduled: time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC),
		HomeName:  home,
		AwayName:  away,
		HomeScore: hs,
		AwayScore: as,
	}
}

func TestBuildElo(t *testing.T) {
	Convey("Given a single home win between equal teams", t, func() {
		rows := rating.BuildElo([]model.Game{closedGame("g1", 1, "Lakers", "Celtics", "100", "90")}, rating.DefaultEloParams())

		Convey("Then the winner gains what the loser drops", func() {
			So(rows, ShouldHaveLength, 2)
			So(rows[0].Team, ShouldEqual, "Lakers")
			So(rows[0].Wins, ShouldEqual, "1")
			So(rows[1].Losses, ShouldEqual, "1")
			winner := model.ParseNumber(rows[0].Rating)
			loser := model.ParseNumber(rows[1].Rating)
			So(winner+loser, ShouldAlmostEqual, 3000, 0.02)
			// expectation with a 60 point edge is ~0.5855, so the gain is ~8.29
			So(winner, ShouldAlmostEqual, 1508.29, 0.01)
		})
	})

	Convey("Given a tied final", t, func() {
		rows := rating.BuildElo([]model.Game{closedGame("g1", 1, "Heat", "Magic", "99", "99")}, rating.DefaultEloParams())

		Convey("Then the home team is charged with the loss", func() {
			So(rows[0].Team, ShouldEqual, "Magic")
			So(rows[0].Wins, ShouldEqual, "1")
			So(rows[1].Team, ShouldEqual, "Heat")
			So(rows[1].Losses, ShouldEqual, "1")
		})
	})

	Convey("Given open and unparseable games", t, func() {
		open := closedGame("g2", 2, "Lakers", "Celtics", "", "")
		open.Status = "scheduled"
		rows := rating.BuildElo([]model.Game{
			open,
			closedGame("g3", 3, "Lakers", "Celtics", "x", "90"),
		}, rating.DefaultEloParams())

		Convey("Then they are ignored", func() {
			So(rows, ShouldBeEmpty)
		})
	})

	Convey("Given games out of order", t, func() {
		rows := rating.BuildElo([]model.Game{
			closedGame("g2", 5, "Celtics", "Lakers", "80", "100"),
			closedGame("g1", 1, "Lakers", "Celtics", "100", "90"),
		}, rating.DefaultEloParams())

		Convey("Then every game is counted once", func() {
			So(rows[0].Team, ShouldEqual, "Lakers")
			So(rows[0].Games, ShouldEqual, "2")
			So(rows[0].Wins, ShouldEqual, "2")
		})
	})
}
