package ranking_test

import (
	"testing"

	"github.com/lanefour/meetscore/internal/domain/model"
	"github.com/lanefour/meetscore/internal/domain/ranking"
	"github.com/lanefour/meetscore/internal/domain/scoretable"
	. "github.com/smartystreets/goconvey/convey"
)

func seeded(athleteID, seedTime string) *model.Entry {
	return &model.Entry{AthleteID: athleteID, SeedTime: seedTime}
}

func championshipTable() scoretable.Table {
	points := make([]float64, 24)
	points[0], points[1], points[2] = 32, 28, 27
	for i := 3; i < 24; i++ {
		points[i] = float64(26 - i)
	}
	return scoretable.New(points, 24)
}

func TestRankEventTies(t *testing.T) {
	Convey("Given three individual entries with two tied times", t, func() {
		entries := []*model.Entry{
			seeded("a1", "4:15.00"),
			seeded("a2", "4:15.00"),
			seeded("a3", "4:20.00"),
		}

		Convey("When ranking the event", func() {
			err := ranking.RankEvent(entries, model.CategoryIndividual, championshipTable())
			So(err, ShouldBeNil)

			Convey("Then the tie block shares place 1 and averaged points", func() {
				So(*entries[0].Place, ShouldEqual, 1)
				So(*entries[1].Place, ShouldEqual, 1)
				So(*entries[0].Points, ShouldEqual, 30.0)
				So(*entries[1].Points, ShouldEqual, 30.0)
			})

			Convey("Then the next entry takes the place after the block", func() {
				So(*entries[2].Place, ShouldEqual, 3)
				So(*entries[2].Points, ShouldEqual, 27.0)
			})
		})
	})

	Convey("Given times just inside and just outside the tolerance", t, func() {
		table := scoretable.New([]float64{10, 8, 6}, 3)

		Convey("When two times differ by less than 0.001s", func() {
			a := &model.Entry{AthleteID: "a", SeedSeconds: ptr(60.0)}
			b := &model.Entry{AthleteID: "b", SeedSeconds: ptr(60.0005)}
			So(ranking.RankEvent([]*model.Entry{a, b}, model.CategoryIndividual, table), ShouldBeNil)

			So(*a.Place, ShouldEqual, 1)
			So(*b.Place, ShouldEqual, 1)
			So(*a.Points, ShouldEqual, 9.0)
			So(*b.Points, ShouldEqual, 9.0)
		})

		Convey("When two times differ by more than the tolerance", func() {
			a := &model.Entry{AthleteID: "a", SeedSeconds: ptr(60.0)}
			b := &model.Entry{AthleteID: "b", SeedSeconds: ptr(60.002)}
			So(ranking.RankEvent([]*model.Entry{a, b}, model.CategoryIndividual, table), ShouldBeNil)

			So(*a.Place, ShouldEqual, 1)
			So(*b.Place, ShouldEqual, 2)
		})
	})
}

func TestRankEventDirection(t *testing.T) {
	Convey("Given diving entries", t, func() {
		table := scoretable.New([]float64{10, 8}, 2)
		low := &model.Entry{AthleteID: "low", SeedTime: "300"}
		high := &model.Entry{AthleteID: "high", SeedTime: "310"}

		Convey("When ranking", func() {
			So(ranking.RankEvent([]*model.Entry{low, high}, model.CategoryDiving, table), ShouldBeNil)

			Convey("Then the higher score wins", func() {
				So(*high.Place, ShouldEqual, 1)
				So(*low.Place, ShouldEqual, 2)
			})
		})
	})

	Convey("Given swimming entries", t, func() {
		table := scoretable.New([]float64{10, 8}, 2)
		fast := &model.Entry{AthleteID: "fast", SeedTime: "1:00.00"}
		slow := &model.Entry{AthleteID: "slow", SeedTime: "1:10.00"}

		Convey("When ranking", func() {
			So(ranking.RankEvent([]*model.Entry{slow, fast}, model.CategoryIndividual, table), ShouldBeNil)

			Convey("Then the lower time wins", func() {
				So(*fast.Place, ShouldEqual, 1)
				So(*slow.Place, ShouldEqual, 2)
			})
		})
	})
}

func TestRankEventCutoff(t *testing.T) {
	Convey("Given more entries than scoring places", t, func() {
		table := scoretable.New([]float64{5, 3, 1}, 2)
		entries := []*model.Entry{
			seeded("a1", "1:00.00"),
			seeded("a2", "1:01.00"),
			seeded("a3", "1:02.00"),
		}

		Convey("When ranking", func() {
			So(ranking.RankEvent(entries, model.CategoryIndividual, table), ShouldBeNil)

			Convey("Then places beyond the cutoff earn exactly 0", func() {
				So(*entries[2].Place, ShouldEqual, 3)
				So(*entries[2].Points, ShouldEqual, 0.0)
			})
		})
	})
}

func TestRankEventExtractionPolicy(t *testing.T) {
	Convey("Given entries with layered time sources", t, func() {
		table := scoretable.New([]float64{10, 8, 6}, 3)

		final := &model.Entry{AthleteID: "final", SeedTime: "2:00.00", FinalSeconds: ptr(58.0)}
		override := &model.Entry{AthleteID: "override", SeedTime: "2:00.00", OverrideSeconds: ptr(59.0)}
		seedText := &model.Entry{AthleteID: "seed", SeedTime: "1:01.00"}

		Convey("When ranking", func() {
			So(ranking.RankEvent([]*model.Entry{seedText, override, final}, model.CategoryIndividual, table), ShouldBeNil)

			Convey("Then final beats override beats seed text", func() {
				So(*final.Place, ShouldEqual, 1)
				So(*override.Place, ShouldEqual, 2)
				So(*seedText.Place, ShouldEqual, 3)
			})
		})
	})

	Convey("Given an entry with unparseable seed text", t, func() {
		table := scoretable.New([]float64{10, 8}, 2)
		noTime := &model.Entry{AthleteID: "nt", SeedTime: "NT"}
		timed := &model.Entry{AthleteID: "ok", SeedTime: "1:00.00"}

		Convey("When ranking", func() {
			So(ranking.RankEvent([]*model.Entry{timed, noTime}, model.CategoryIndividual, table), ShouldBeNil)

			Convey("Then the 0 sentinel sorts as fastest", func() {
				So(*noTime.Place, ShouldEqual, 1)
				So(*timed.Place, ShouldEqual, 2)
			})
		})
	})
}

func TestRankEventIdempotence(t *testing.T) {
	Convey("Given a ranked event", t, func() {
		entries := []*model.Entry{
			seeded("a1", "4:15.00"),
			seeded("a2", "4:15.00"),
			seeded("a3", "4:20.00"),
		}
		table := championshipTable()
		So(ranking.RankEvent(entries, model.CategoryIndividual, table), ShouldBeNil)

		places := []int{*entries[0].Place, *entries[1].Place, *entries[2].Place}
		points := []float64{*entries[0].Points, *entries[1].Points, *entries[2].Points}

		Convey("When ranking again with unchanged input", func() {
			So(ranking.RankEvent(entries, model.CategoryIndividual, table), ShouldBeNil)

			Convey("Then output is identical", func() {
				for i, e := range entries {
					So(*e.Place, ShouldEqual, places[i])
					So(*e.Points, ShouldEqual, points[i])
				}
			})
		})
	})
}

func TestRankEventStructuralErrors(t *testing.T) {
	Convey("Given an unknown category", t, func() {
		err := ranking.RankEvent([]*model.Entry{seeded("a", "1:00.00")}, model.Category("medley"), scoretable.Table{})

		Convey("Then a typed error is returned", func() {
			So(err, ShouldNotBeNil)
			So(err, ShouldWrap, ranking.ErrUnknownCategory)
		})
	})

	Convey("Given no entries", t, func() {
		So(ranking.RankEvent([]*model.Entry{}, model.CategoryIndividual, scoretable.Table{}), ShouldBeNil)
	})
}

func ptr(v float64) *float64 { return &v }
