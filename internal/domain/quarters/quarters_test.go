package quarters_test

import (
	"testing"

	"github.com/okian/edgefinder/internal/domain/model"
	"github.com/okian/edgefinder/internal/domain/quarters"
	. "github.com/smartystreets/goconvey/convey"
)

func qgame(id, home, away string, hq, aq [4]string) model.Game {
	return model.Game{
		ID: id, Status: model.StatusClosed,
		HomeID: home, HomeName: home + " Name", HomeAlias: home,
		AwayID: away, AwayName: away + " Name", AwayAlias: away,
		HomeQuarters: hq, AwayQuarters: aq,
	}
}

func TestRegress(t *testing.T) {
	Convey("Given the regression toward the league average", t, func() {
		Convey("When a team has no games it equals the league average", func() {
			So(quarters.Regress(0, 0, 27.5, 10), ShouldEqual, 27.5)
		})

		Convey("When a team has many games it converges to its own average", func() {
			est := quarters.Regress(30*100000, 100000, 25, 10)
			So(est, ShouldAlmostEqual, 30, 0.001)
			So(quarters.Regress(30*10, 10, 25, 10), ShouldEqual, 27.5)
		})

		Convey("When k is not positive the default is used", func() {
			So(quarters.Regress(0, 0, 20, 0), ShouldEqual, 20)
		})
	})
}

func TestContextual(t *testing.T) {
	Convey("Given a small league", t, func() {
		games := []model.Game{
			qgame("g1", "A", "B", [4]string{"30", "20", "25", "25"}, [4]string{"20", "30", "25", "15"}),
			qgame("g2", "B", "A", [4]string{"28", "22", "24", "24"}, [4]string{"22", "28", "26", "22"}),
			qgame("g3", "C", "D", [4]string{"26", "", "24", "x"}, [4]string{"24", "26", "26", "26"}),
		}
		games[0].HomeOvertime = [4]string{"10", "8", "", ""}
		games[0].AwayOvertime = [4]string{"10", "5", "", ""}

		m := quarters.Contextual(games, "A", "B", quarters.DefaultK)

		Convey("Then the home team's home cell blends its games with the league", func() {
			// league home q1: (30+28+26)/3 = 28 for, (20+22+24)/3 = 22 against
			q1 := m.Home[quarters.Q1]
			So(q1.GamesFor, ShouldEqual, 1)
			So(q1.GamesAgainst, ShouldEqual, 1)
			So(q1.ExpectedFor, ShouldAlmostEqual, (30.0+28*10)/11, 1e-9)
			So(q1.ExpectedAgainst, ShouldAlmostEqual, (20.0+22*10)/11, 1e-9)
			So(q1.ExpectedDiff, ShouldAlmostEqual, q1.ExpectedFor-q1.ExpectedAgainst, 1e-9)
		})

		Convey("Then a quarter missing a side is skipped", func() {
			// C/D q2 has no home score, so league home q2 is (20+22)/2 = 21
			So(m.Home[quarters.Q2].ExpectedFor, ShouldAlmostEqual, (20.0+21*10)/11, 1e-9)
		})

		Convey("Then overtime periods are summed and credited once", func() {
			ot := m.Home[quarters.OT]
			So(ot.GamesFor, ShouldEqual, 1)
			So(ot.ExpectedFor, ShouldAlmostEqual, (18.0+18*10)/11, 1e-9)
			So(ot.ExpectedAgainst, ShouldAlmostEqual, (15.0+15*10)/11, 1e-9)
			So(m.Away[quarters.OT].GamesFor, ShouldEqual, 1)
		})

		Convey("Then the away team's road cell is used", func() {
			q1 := m.Away[quarters.Q1]
			So(q1.GamesFor, ShouldEqual, 1)
			// league away q1 for = (20+22+24)/3 = 22
			So(q1.ExpectedFor, ShouldAlmostEqual, (20.0+22*10)/11, 1e-9)
		})

		Convey("Then an unknown team gets the league average", func() {
			u := quarters.Contextual(games, "Z", "Y", quarters.DefaultK)
			So(u.Home[quarters.Q1].ExpectedFor, ShouldAlmostEqual, 28, 1e-9)
			So(u.Home[quarters.Q1].GamesFor, ShouldEqual, 0)
			So(u.Away[quarters.Q1].ExpectedFor, ShouldAlmostEqual, 22, 1e-9)
		})
	})

	Convey("Given no games", t, func() {
		m := quarters.Contextual(nil, "A", "B", quarters.DefaultK)
		So(m.Home, ShouldHaveLength, 5)
		So(m.Home[quarters.OT], ShouldResemble, quarters.Estimate{})
	})
}

func TestPooled(t *testing.T) {
	Convey("Given no closed games", t, func() {
		open := qgame("g1", "A", "B", [4]string{"1", "1", "1", "1"}, [4]string{"1", "1", "1", "1"})
		open.Status = "scheduled"
		m := quarters.Pooled([]model.Game{open}, "A", "B", quarters.DefaultK)

		Convey("Then every quarter is zero", func() {
			for _, p := range []quarters.PooledPrognostics{m.Home, m.Away} {
				So(p.ByQuarter, ShouldHaveLength, 4)
				for i, e := range p.ByQuarter {
					So(e, ShouldResemble, quarters.PooledEstimate{Quarter: i + 1})
				}
			}
		})
	})

	Convey("Given closed games", t, func() {
		games := []model.Game{
			qgame("g1", "A", "B", [4]string{"30", "20", "25", "25"}, [4]string{"20", "30", "25", "15"}),
			qgame("g2", "B", "A", [4]string{"28", "22", "24", "24"}, [4]string{"22", "28", "26", "22"}),
		}
		games[1].Status = ""
		games[0].AwayQuarters[3] = ""

		m := quarters.Pooled(games, "A", "B", quarters.DefaultK)

		Convey("Then the league baseline mirrors between contexts", func() {
			// q1 home mean (30+28)/2 = 29, away mean (20+22)/2 = 21
			h := m.Home.ByQuarter[0]
			So(h.Games, ShouldEqual, 1)
			So(h.ExpectedFor, ShouldAlmostEqual, (30.0+29*10)/11, 1e-9)
			So(h.ExpectedAgainst, ShouldAlmostEqual, (20.0+21*10)/11, 1e-9)
			a := m.Away.ByQuarter[0]
			So(a.ExpectedFor, ShouldAlmostEqual, (20.0+21*10)/11, 1e-9)
			So(a.ExpectedAgainst, ShouldAlmostEqual, (30.0+29*10)/11, 1e-9)
		})

		Convey("Then for and against are counted independently", func() {
			h := m.Home.ByQuarter[3]
			So(h.Games, ShouldEqual, 1)
			// against is missing in g1 q4 so it is the league mean alone,
			// which only g2 contributes to (away score 22)
			So(h.ExpectedAgainst, ShouldAlmostEqual, 22, 1e-9)
		})
	})
}

func TestStandings(t *testing.T) {
	Convey("Given closed games", t, func() {
		games := []model.Game{
			qgame("g1", "A", "B", [4]string{"30", "20", "25", "25"}, [4]string{"20", "30", "25", "15"}),
			qgame("g2", "B", "A", [4]string{"28", "22", "24", "24"}, [4]string{"22", "28", "26", "22"}),
		}
		rows := quarters.Standings(games)

		Convey("Then each team has all, home and away cells", func() {
			So(rows, ShouldHaveLength, 2)
			So(rows[0].ID, ShouldEqual, "A")
			q1 := rows[0].Stats[quarters.Q1]
			So(q1.All, ShouldResemble, quarters.Cell{GamesPlayed: 2, PointsFor: 52, PointsAgainst: 48})
			So(q1.Home, ShouldResemble, quarters.Cell{GamesPlayed: 1, PointsFor: 30, PointsAgainst: 20})
			So(q1.Away, ShouldResemble, quarters.Cell{GamesPlayed: 1, PointsFor: 22, PointsAgainst: 28})
			So(rows[0].Stats[quarters.OT].All.GamesPlayed, ShouldEqual, 0)
		})
	})
}
