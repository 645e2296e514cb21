package standings_test

import (
	"testing"

	"github.com/lanefour/meetscore/internal/domain/model"
	"github.com/lanefour/meetscore/internal/domain/standings"
	. "github.com/smartystreets/goconvey/convey"
)

func entry(athleteID, teamID, eventID string, points float64) *model.Entry {
	e := &model.Entry{AthleteID: athleteID, TeamID: teamID, EventID: eventID}
	e.SetResult(1, points)
	return e
}

func relay(teamID, eventID string, points float64) *model.RelayEntry {
	r := &model.RelayEntry{TeamID: teamID, EventID: eventID}
	r.SetResult(1, points)
	return r
}

func TestAggregateTeams(t *testing.T) {
	events := []model.Event{
		{ID: "free", Category: model.CategoryIndividual},
		{ID: "dive", Category: model.CategoryDiving},
		{ID: "medleyRelay", Category: model.CategoryRelay},
	}

	Convey("Given entries across all three categories", t, func() {
		entries := []*model.Entry{
			entry("a1", "t1", "free", 20),
			entry("a2", "t1", "dive", 13),
			entry("b1", "t2", "free", 17),
		}
		relays := []*model.RelayEntry{
			relay("t1", "medleyRelay", 40),
			relay("t2", "medleyRelay", 34),
		}
		configs := []model.TeamRosterConfig{
			{TeamID: "t1", SelectedAthletes: []string{"a1", "a2"}},
			{TeamID: "t2", SelectedAthletes: []string{"b1"}},
		}

		Convey("When aggregating", func() {
			scores := standings.AggregateTeams(events, entries, relays, configs)

			Convey("Then category sums and totals line up exactly", func() {
				So(scores, ShouldHaveLength, 2)
				So(scores[0].TeamID, ShouldEqual, "t1")
				So(scores[0].Individual, ShouldEqual, 20.0)
				So(scores[0].Diving, ShouldEqual, 13.0)
				So(scores[0].Relay, ShouldEqual, 40.0)
				So(scores[0].Total, ShouldEqual, 73.0)
				So(scores[1].TeamID, ShouldEqual, "t2")
				So(scores[1].Total, ShouldEqual, 51.0)
			})

			Convey("Then totals are the exact sum of the category scores", func() {
				for _, s := range scores {
					So(s.Total, ShouldEqual, s.Individual+s.Diving+s.Relay)
				}
			})

			Convey("Then ranks follow total descending", func() {
				So(scores[0].Rank, ShouldEqual, 1)
				So(scores[1].Rank, ShouldEqual, 2)
			})
		})
	})

	Convey("Given an exhibition athlete who is also selected", t, func() {
		entries := []*model.Entry{
			entry("a1", "t1", "free", 20),
			entry("a2", "t1", "free", 17),
		}
		configs := []model.TeamRosterConfig{
			{
				TeamID:               "t1",
				SelectedAthletes:     []string{"a1", "a2"},
				ExhibitionAthleteIDs: []string{"a2"},
			},
		}

		Convey("When aggregating", func() {
			scores := standings.AggregateTeams(events, entries, nil, configs)

			Convey("Then the exhibition athlete never contributes", func() {
				So(scores[0].Individual, ShouldEqual, 20.0)
			})
		})
	})

	Convey("Given relay points for an ineligible-heavy team", t, func() {
		relays := []*model.RelayEntry{relay("t1", "medleyRelay", 40)}
		configs := []model.TeamRosterConfig{{TeamID: "t1"}}

		Convey("When aggregating", func() {
			scores := standings.AggregateTeams(events, nil, relays, configs)

			Convey("Then the relay sum is unfiltered by eligibility", func() {
				So(scores[0].Relay, ShouldEqual, 40.0)
				So(scores[0].Total, ShouldEqual, 40.0)
			})
		})
	})

	Convey("Given unscored entries", t, func() {
		entries := []*model.Entry{
			{AthleteID: "a1", TeamID: "t1", EventID: "free"},
		}
		configs := []model.TeamRosterConfig{
			{TeamID: "t1", SelectedAthletes: []string{"a1"}},
		}

		Convey("When aggregating", func() {
			scores := standings.AggregateTeams(events, entries, nil, configs)

			Convey("Then nil points contribute nothing", func() {
				So(scores[0].Total, ShouldEqual, 0.0)
			})
		})
	})

	Convey("Given teams tied on total", t, func() {
		entries := []*model.Entry{
			entry("a1", "t1", "free", 10),
			entry("b1", "t2", "free", 10),
		}
		configs := []model.TeamRosterConfig{
			{TeamID: "t2", SelectedAthletes: []string{"b1"}},
			{TeamID: "t1", SelectedAthletes: []string{"a1"}},
		}

		Convey("When aggregating", func() {
			scores := standings.AggregateTeams(events, entries, nil, configs)

			Convey("Then configured order is kept", func() {
				So(scores[0].TeamID, ShouldEqual, "t2")
				So(scores[1].TeamID, ShouldEqual, "t1")
			})
		})
	})

	Convey("Given a team present only in entries", t, func() {
		entries := []*model.Entry{entry("x1", "t9", "free", 12)}

		Convey("When aggregating with no roster configs", func() {
			scores := standings.AggregateTeams(events, entries, nil, nil)

			Convey("Then the team appears but nothing counts without a roster", func() {
				So(scores, ShouldHaveLength, 1)
				So(scores[0].TeamID, ShouldEqual, "t9")
				So(scores[0].Total, ShouldEqual, 0.0)
			})
		})
	})
}
