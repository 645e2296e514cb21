package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/lanefour/meetscore/internal/adapters/repository"
	"github.com/lanefour/meetscore/internal/domain/model"
	"github.com/lanefour/meetscore/internal/domain/standings"
	"github.com/lanefour/meetscore/internal/domain/view"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleMeet() repository.Meet {
	return repository.Meet{
		Name:   "Sectional Championships",
		Events: []model.Event{{ID: "free", Name: "100 Free", Category: model.CategoryIndividual}},
		Entries: []*model.Entry{
			{AthleteID: "a1", TeamID: "t1", EventID: "free", SeedTime: "1:00.00"},
		},
		Relays: []*model.RelayEntry{
			{TeamID: "t1", EventID: "free", SeedTime: "1:40.00"},
		},
		Rosters: []model.TeamRosterConfig{
			{TeamID: "t1", SelectedAthletes: []string{"a1"}},
		},
	}
}

func TestMemStoreCreateGet(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		store := repository.NewMemStore()

		Convey("When creating a meet without IDs", func() {
			id, err := store.CreateMeet(ctx, sampleMeet())
			So(err, ShouldBeNil)

			Convey("Then a meet ID is minted", func() {
				So(id, ShouldNotBeEmpty)
				So(store.Count(ctx), ShouldEqual, 1)
			})

			Convey("Then entry and relay IDs are minted too", func() {
				got, err := store.GetMeet(ctx, id)
				So(err, ShouldBeNil)
				So(got.Entries[0].ID, ShouldNotBeEmpty)
				So(got.Relays[0].ID, ShouldNotBeEmpty)
			})
		})

		Convey("When creating the same explicit ID twice", func() {
			meet := sampleMeet()
			meet.ID = "fixed"
			_, err := store.CreateMeet(ctx, meet)
			So(err, ShouldBeNil)

			_, err = store.CreateMeet(ctx, meet)
			So(err, ShouldNotBeNil)
		})

		Convey("When fetching an unknown meet", func() {
			_, err := store.GetMeet(ctx, "nope")
			So(err, ShouldWrap, repository.ErrMeetNotFound)
		})
	})
}

func TestMemStoreIsolation(t *testing.T) {
	ctx := context.Background()

	Convey("Given a stored meet", t, func() {
		store := repository.NewMemStore()
		id, err := store.CreateMeet(ctx, sampleMeet())
		So(err, ShouldBeNil)

		Convey("When mutating a fetched copy", func() {
			got, err := store.GetMeet(ctx, id)
			So(err, ShouldBeNil)
			got.Entries[0].SeedTime = "9:99.99"
			got.Rosters[0].SelectedAthletes[0] = "tampered"

			Convey("Then the stored snapshot is unaffected", func() {
				again, err := store.GetMeet(ctx, id)
				So(err, ShouldBeNil)
				So(again.Entries[0].SeedTime, ShouldEqual, "1:00.00")
				So(again.Rosters[0].SelectedAthletes[0], ShouldEqual, "a1")
			})
		})
	})
}

func TestMemStoreReplaceResults(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2026, 2, 14, 18, 0, 0, 0, time.UTC)

	Convey("Given a stored meet and a fixed clock", t, func() {
		store := repository.NewMemStore(repository.WithClock(func() time.Time { return fixed }))
		id, err := store.CreateMeet(ctx, sampleMeet())
		So(err, ShouldBeNil)

		Convey("When replacing results", func() {
			scored := &model.Entry{AthleteID: "a1", TeamID: "t1", EventID: "free", SeedTime: "1:00.00"}
			scored.SetResult(1, 20)
			scores := []standings.TeamScore{{Rank: 1, TeamID: "t1", Individual: 20, Total: 20}}

			err := store.ReplaceResults(ctx, id, []*model.Entry{scored}, nil, scores, view.ModeSimulated)
			So(err, ShouldBeNil)

			Convey("Then the snapshot carries the new results wholesale", func() {
				got, err := store.GetMeet(ctx, id)
				So(err, ShouldBeNil)
				So(*got.Entries[0].Points, ShouldEqual, 20.0)
				So(got.Standings, ShouldHaveLength, 1)
				So(got.Mode, ShouldEqual, view.ModeSimulated)
				So(got.ScoredAt.Equal(fixed), ShouldBeTrue)
			})

			Convey("Then later mutation of the passed slices is invisible", func() {
				scored.SetResult(5, 0)
				got, err := store.GetMeet(ctx, id)
				So(err, ShouldBeNil)
				So(*got.Entries[0].Place, ShouldEqual, 1)
			})
		})

		Convey("When replacing results for an unknown meet", func() {
			err := store.ReplaceResults(ctx, "nope", nil, nil, nil, view.ModeReal)
			So(err, ShouldWrap, repository.ErrMeetNotFound)
		})
	})
}

func TestMemStoreUpdateRoster(t *testing.T) {
	ctx := context.Background()

	Convey("Given a stored meet", t, func() {
		store := repository.NewMemStore()
		id, err := store.CreateMeet(ctx, sampleMeet())
		So(err, ShouldBeNil)

		Convey("When updating an existing team's roster", func() {
			cfg := model.TeamRosterConfig{TeamID: "t1", SelectedAthletes: []string{"a1", "a2"}}
			So(store.UpdateRoster(ctx, id, cfg), ShouldBeNil)

			got, err := store.GetMeet(ctx, id)
			So(err, ShouldBeNil)
			So(got.Rosters[0].SelectedAthletes, ShouldResemble, []string{"a1", "a2"})
		})

		Convey("When updating an unknown team", func() {
			err := store.UpdateRoster(ctx, id, model.TeamRosterConfig{TeamID: "t9"})
			So(err, ShouldWrap, repository.ErrTeamNotFound)
		})

		Convey("When updating a roster on an unknown meet", func() {
			err := store.UpdateRoster(ctx, "nope", model.TeamRosterConfig{TeamID: "t1"})
			So(err, ShouldWrap, repository.ErrMeetNotFound)
		})
	})
}

func TestMeetRoster(t *testing.T) {
	Convey("Given a meet snapshot", t, func() {
		meet := sampleMeet()

		Convey("Then known teams resolve", func() {
			cfg, err := meet.Roster("t1")
			So(err, ShouldBeNil)
			So(cfg.TeamID, ShouldEqual, "t1")
		})

		Convey("Then unknown teams fail with a typed error", func() {
			_, err := meet.Roster("t9")
			So(err, ShouldWrap, repository.ErrTeamNotFound)
		})
	})
}
