package service_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	service "github.com/okian/edgefinder/internal/app"
	"github.com/okian/edgefinder/internal/domain/form"
	"github.com/okian/edgefinder/internal/domain/model"
	"github.com/okian/edgefinder/internal/domain/rating"
	"github.com/okian/edgefinder/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

type memStore struct {
	snap *model.Snapshot
	err  error
}

func (m *memStore) Load(ctx context.Context) (*model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.snap, nil
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]rating.Entry
	gets int
	sets int
}

func (c *memCache) Get(_ context.Context, key string) ([]rating.Entry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	e, ok := c.data[key]
	return e, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, entries []rating.Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.data == nil {
		c.data = make(map[string][]rating.Entry)
	}
	c.data[key] = entries
	return nil
}

func logged(id string, day int, homeID, homeName, homeAlias, awayID, awayName, awayAlias, hs, as string) model.Game {
	return model.Game{
		ID:        id,
		Status:    model.StatusClosed,
		Scheduled: time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC),
		HomeID:    homeID, HomeName: homeName, HomeAlias: homeAlias,
		AwayID: awayID, AwayName: awayName, AwayAlias: awayAlias,
		HomeScore: hs, AwayScore: as,
		HomeQuarters: [4]string{"25", "25", "25", "25"},
		AwayQuarters: [4]string{"24", "24", "24", "24"},
	}
}

func fixture() *model.Snapshot {
	return &model.Snapshot{
		Games: []model.Game{
			logged("g1", 8, "lal", "Lakers", "LAL", "bos", "Celtics", "BOS", "110", "100"),
			logged("g2", 6, "bos", "Celtics", "BOS", "lal", "Lakers", "LAL", "105", "99"),
			logged("g3", 1, "lal", "Lakers", "LAL", "bkn", "Nets", "BKN", "100", "100"),
		},
		Ratings: []model.RatingRow{
			{Team: "Nets", Rating: "1500"},
			{Team: "Celtics", Rating: "1600"},
			{Team: "Lakers", Rating: "1700"},
		},
		Standings: []model.StandingsTeam{
			{
				ID: "lal", Name: "Lakers", Market: "Los Angeles", WinPct: 0.55,
				Wins: 22, Losses: 18, PointsFor: 110, PointsAgainst: 105, ConferenceRank: 4,
				Records: []model.Record{
					{Type: "home", Wins: 12, Losses: 8, WinPct: 0.6},
					{Type: "road", Wins: 10, Losses: 10, WinPct: 0.5},
				},
			},
			{ID: "bos", Name: "Celtics", Market: "Boston", WinPct: 0.65, PointsFor: 90, PointsAgainst: 95},
		},
		Schedule: []model.ScheduledGame{
			{
				ID: "g-today", Title: "Celtics at Lakers", Scheduled: "2025-03-10T19:30:00Z", Status: "scheduled",
				Home:  model.TeamRef{ID: "lal", Name: "Los Angeles Lakers", Alias: "LAL"},
				Away:  model.TeamRef{ID: "bos", Name: "Boston Celtics", Alias: "BOS"},
				Venue: model.Venue{Name: "Crypto.com Arena", City: "Los Angeles", State: "CA"},
			},
			{
				ID: "g-two", Scheduled: "2025-03-10T23:00:00Z",
				Home: model.TeamRef{ID: "bkn", Name: "Brooklyn Nets", Alias: "BKN"},
				Away: model.TeamRef{ID: "zzz", Name: "Mystery Team", Alias: "ZZZ"},
			},
		},
		Injuries: []model.TeamInjuries{
			{TeamID: "lal", TeamName: "Lakers", Players: []model.InjuredPlayer{{Name: "A. Player", Status: "Out", Desc: "Ankle"}}},
		},
		Leaders: []model.Leader{
			{Category: "points", Player: "A. Scorer", Average: 27.1, TeamID: "lal"},
			{Category: "assists", Player: "B. Passer", Average: 9.2, TeamID: "bos"},
			{Category: "rebounds", Player: "C. Big", Average: 11.4, TeamID: "lal"},
		},
	}
}

func newService(opts ...service.Option) *service.Service {
	base := []service.Option{
		service.WithStore(&memStore{snap: fixture()}),
		service.WithClock(clock),
	}
	return service.New(append(base, opts...)...)
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a service without a store", t, func() {
		svc := service.New()

		Convey("Start fails", func() {
			err := svc.Start(context.Background())
			So(errors.Is(err, service.ErrNoStore), ShouldBeTrue)
		})
	})

	Convey("Given a service with a store", t, func() {
		svc := newService(service.WithWorkerCount(3))
		defer svc.Stop()

		So(svc.Start(context.Background()), ShouldBeNil)

		Convey("Stats report the configuration", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, true)
			So(stats["workerCount"], ShouldEqual, 3)
			So(stats["ratingsSource"], ShouldEqual, service.RatingsFromFile)
			So(stats["ratingCache"], ShouldEqual, false)
		})

		Convey("Stop clears the started flag", func() {
			svc.Stop()
			So(svc.GetStats()["started"], ShouldEqual, false)
		})
	})

	Convey("Given a store that fails", t, func() {
		boom := errors.New("boom")
		svc := service.New(service.WithStore(&memStore{err: boom}))

		Convey("Start and reads surface the error", func() {
			So(errors.Is(svc.Start(context.Background()), boom), ShouldBeTrue)
			_, err := svc.Analyze(context.Background(), "g1")
			So(errors.Is(err, boom), ShouldBeTrue)
			_, err = svc.Export(context.Background())
			So(errors.Is(err, boom), ShouldBeTrue)
		})
	})
}

func TestService_Analyze(t *testing.T) {
	Convey("Given a service over the fixture", t, func() {
		svc := newService()
		ctx := context.Background()

		Convey("An unknown game is not found", func() {
			_, err := svc.Analyze(ctx, "nope")
			So(errors.Is(err, service.ErrGameNotFound), ShouldBeTrue)
		})

		Convey("A scheduled game is fully analyzed", func() {
			a, err := svc.Analyze(ctx, "g-today")
			So(err, ShouldBeNil)

			So(a.Game.Title, ShouldEqual, "Celtics at Lakers")
			So(a.Game.Status, ShouldEqual, "scheduled")
			So(a.Game.Venue.Name, ShouldEqual, "Crypto.com Arena")
			So(a.Game.Home.Name, ShouldEqual, "Los Angeles Lakers")

			home, away := a.HomeTeam, a.AwayTeam
			So(*home.RatingRank, ShouldEqual, 1)
			So(*home.Rating, ShouldEqual, 1700.0)
			So(*away.RatingRank, ShouldEqual, 2)
			So(*away.Rating, ShouldEqual, 1600.0)

			So(home.Standings, ShouldNotBeNil)
			So(home.Standings.Overall.OverallRank, ShouldEqual, 2)
			So(home.Standings.Home.Wins, ShouldEqual, 12)
			So(home.Standings.Away.Losses, ShouldEqual, 10)
			So(away.Standings.Overall.OverallRank, ShouldEqual, 1)

			So(home.Form.Last10, ShouldResemble, formWindow(3, 1, 2))
			So(home.Form.Last5Context, ShouldResemble, formWindow(2, 1, 1))
			So(home.Form.Last5Days, ShouldResemble, formWindow(2, 1, 1))
			So(away.Form.Last5Context, ShouldResemble, formWindow(1, 0, 1))

			So(home.Injuries, ShouldHaveLength, 1)
			So(away.Injuries, ShouldBeEmpty)
			So(home.Leaders, ShouldHaveLength, 2)
			So(away.Leaders, ShouldHaveLength, 1)

			So(home.Prognostics, ShouldHaveLength, 5)
			So(home.ProPrognostics.ByQuarter, ShouldHaveLength, 4)
			So(away.ProPrognostics.ByQuarter, ShouldHaveLength, 4)

			ra := a.TotalsProjection.RatingAdjusted
			So(ra.BaseHome, ShouldAlmostEqual, 104.5, 1e-9)
			So(ra.BaseAway, ShouldAlmostEqual, 94.5, 1e-9)
			So(ra.Tilt, ShouldAlmostEqual, 2.0, 1e-9)
			So(ra.Home, ShouldAlmostEqual, 106.5, 1e-9)
			So(ra.Away, ShouldAlmostEqual, 92.5, 1e-9)
			So(a.TotalsProjection.Simple.Total, ShouldEqual, 200.0)
		})

		Convey("A game only in the log keeps its scores and gets a placeholder venue", func() {
			a, err := svc.Analyze(ctx, "g1")
			So(err, ShouldBeNil)
			So(a.Game.Status, ShouldEqual, model.StatusClosed)
			So(a.Game.HomeScore, ShouldEqual, "110")
			So(a.Game.Scheduled, ShouldEqual, "2025-03-08T00:00:00Z")
			So(a.Game.Venue.Name, ShouldEqual, "N/A")
			So(*a.HomeTeam.RatingRank, ShouldEqual, 1)
		})

		Convey("An unmatched team has no rating and tilts as zero", func() {
			a, err := svc.Analyze(ctx, "g-two")
			So(err, ShouldBeNil)
			So(a.Game.Status, ShouldEqual, "upcoming")
			So(a.AwayTeam.RatingRank, ShouldBeNil)
			So(a.AwayTeam.Rating, ShouldBeNil)
			So(a.AwayTeam.Standings, ShouldBeNil)
			So(*a.HomeTeam.RatingRank, ShouldEqual, 3)
			So(a.TotalsProjection.RatingAdjusted.Tilt, ShouldAlmostEqual, 30.0, 1e-9)
		})
	})
}

func formWindow(games, wins, losses int) form.Window {
	return form.Window{Games: games, Wins: wins, Losses: losses}
}

func TestService_Export(t *testing.T) {
	Convey("Given a service over the fixture", t, func() {
		ctx := context.Background()

		Convey("One row is produced per scheduled game in order", func() {
			rows, err := newService().Export(ctx)
			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 2)

			r := rows[0]
			So(r.GameID, ShouldEqual, "g-today")
			So(*r.HomeRatingRank, ShouldEqual, 1)
			So(*r.AwayRatingRank, ShouldEqual, 2)
			So(r.ProjHome, ShouldAlmostEqual, 106.5, 1e-9)
			So(r.ProjAway, ShouldAlmostEqual, 92.5, 1e-9)
			So(r.ProjTotal, ShouldAlmostEqual, 199, 1e-9)
			So(r.ProjMargin, ShouldAlmostEqual, 14, 1e-9)
			So(r.BaselineTotal, ShouldEqual, 200.0)
			So(r.HomeLast10W, ShouldEqual, 1)
			So(r.HomeLast10L, ShouldEqual, 2)

			So(rows[1].GameID, ShouldEqual, "g-two")
			So(rows[1].AwayRatingRank, ShouldBeNil)
		})

		Convey("Concurrent and sequential exports are identical", func() {
			seq, err := newService(service.WithWorkerCount(1)).Export(ctx)
			So(err, ShouldBeNil)
			par, err := newService(service.WithWorkerCount(8)).Export(ctx)
			So(err, ShouldBeNil)
			So(par, ShouldResemble, seq)
		})

		Convey("The CSV has the header and one line per game", func() {
			var buf bytes.Buffer
			n, err := newService().ExportCSV(ctx, &buf)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 2)

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			So(lines, ShouldHaveLength, 3)
			So(lines[0], ShouldEqual, strings.Join(types.ExportColumns, ","))
			So(lines[2], ShouldStartWith, "g-two,,2025-03-10T23:00:00Z,Brooklyn Nets,BKN,Mystery Team,ZZZ,3,,1500,,")
		})
	})
}

func TestService_Listings(t *testing.T) {
	Convey("Given a service over the fixture", t, func() {
		ctx := context.Background()

		Convey("Rankings are sorted by rating", func() {
			entries, err := newService().Rankings(ctx)
			So(err, ShouldBeNil)
			So(entries, ShouldHaveLength, 3)
			So(entries[0].Team, ShouldEqual, "Lakers")
			So(entries[2].Rank, ShouldEqual, 3)
		})

		Convey("Rankings can be rebuilt from the game log", func() {
			entries, err := newService(service.WithRatingsSource(service.RatingsFromGames)).Rankings(ctx)
			So(err, ShouldBeNil)
			So(entries, ShouldHaveLength, 3)
			for i, e := range entries {
				So(e.Rank, ShouldEqual, i+1)
			}
		})

		Convey("The rating cache is filled once and then read", func() {
			c := &memCache{}
			svc := newService(service.WithRatingCache(c))
			first, err := svc.Rankings(ctx)
			So(err, ShouldBeNil)
			second, err := svc.Rankings(ctx)
			So(err, ShouldBeNil)
			So(second, ShouldResemble, first)
			So(c.gets, ShouldEqual, 2)
			So(c.sets, ShouldEqual, 1)
		})

		Convey("Standings are ordered by overall rank", func() {
			rows, err := newService().Standings(ctx)
			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 2)
			So(rows[0].ID, ShouldEqual, "bos")
			So(rows[0].OverallRank, ShouldEqual, 1)
			So(rows[1].OverallRank, ShouldEqual, 2)
		})

		Convey("Quarter standings list every team of the log", func() {
			rows, err := newService().QuarterStandings(ctx)
			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 3)
		})

		Convey("Games today pass through", func() {
			games, err := newService().GamesToday(ctx)
			So(err, ShouldBeNil)
			So(games, ShouldHaveLength, 2)
		})

		Convey("The game log is listed in file order with raw scores", func() {
			rows, err := newService().Games(ctx)
			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 3)
			So(rows[0].GameID, ShouldEqual, "g1")
			So(rows[0].Scheduled, ShouldEqual, "2025-03-08T00:00:00Z")
			So(rows[2].HomeScore, ShouldEqual, "100")
			So(rows[2].AwayQuarters[3], ShouldEqual, "24")
		})

		Convey("The league report groups injuries and leaders", func() {
			rep, err := newService().LeagueReport(ctx)
			So(err, ShouldBeNil)
			So(rep.Injuries, ShouldHaveLength, 1)
			So(rep.Injuries[0].Players[0].Name, ShouldEqual, "A. Player")
			So(rep.Leaders.Points, ShouldHaveLength, 1)
			So(rep.Leaders.Points[0].Player, ShouldEqual, "A. Scorer")
			So(rep.Leaders.Assists[0].TeamID, ShouldEqual, "bos")
			So(rep.Leaders.Rebounds, ShouldHaveLength, 1)
			So(rep.Leaders.ThreePointers, ShouldBeEmpty)
		})

		Convey("Listings surface load failures", func() {
			svc := service.New(service.WithStore(&memStore{err: errors.New("disk")}))
			_, err := svc.Games(ctx)
			So(err, ShouldNotBeNil)
			_, err = svc.LeagueReport(ctx)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestScheduler(t *testing.T) {
	Convey("Given a scheduler writing into a temp dir", t, func() {
		dir := filepath.Join(t.TempDir(), "exports")
		sched := service.NewScheduler(newService(), "@every 1h", dir, service.WithSchedulerClock(clock))

		Convey("RunOnce writes a stamped CSV file", func() {
			path, err := sched.RunOnce(context.Background())
			So(err, ShouldBeNil)
			So(path, ShouldEqual, filepath.Join(dir, "edgefinder_upcoming_analysis_20250310T120000Z.csv"))

			b, err := os.ReadFile(path)
			So(err, ShouldBeNil)
			So(string(b), ShouldStartWith, "game_id,title,scheduled")

			entries, err := os.ReadDir(dir)
			So(err, ShouldBeNil)
			So(entries, ShouldHaveLength, 1)
		})

		Convey("Start and Stop manage the cron runner", func() {
			So(sched.Start(context.Background()), ShouldBeNil)
			sched.Stop()
		})

		Convey("An invalid schedule is rejected", func() {
			bad := service.NewScheduler(newService(), "not a schedule", dir)
			So(bad.Start(context.Background()), ShouldNotBeNil)
		})
	})
}
