package testspot_test

import (
	"testing"

	"github.com/lanefour/meetscore/internal/domain/testspot"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Given three candidates with a designated scorer", t, func() {
		candidates := []testspot.Subtotal{
			{AthleteID: "a1", Points: 12},
			{AthleteID: "a2", Points: 20},
			{AthleteID: "a3", Points: 16},
		}

		Convey("When comparing against the current team total", func() {
			rows := testspot.Compare(candidates, "a1", 100)

			Convey("Then rows sort by subtotal descending", func() {
				So(rows, ShouldHaveLength, 3)
				So(rows[0].AthleteID, ShouldEqual, "a2")
				So(rows[1].AthleteID, ShouldEqual, "a3")
				So(rows[2].AthleteID, ShouldEqual, "a1")
			})

			Convey("Then each projection swaps the scorer's points for the candidate's", func() {
				So(rows[0].ProjectedTeamTotal, ShouldEqual, 108.0)
				So(rows[1].ProjectedTeamTotal, ShouldEqual, 104.0)
				So(rows[2].ProjectedTeamTotal, ShouldEqual, 100.0)
			})

			Convey("Then the current scorer's projection is the unchanged total", func() {
				So(rows[2].Scorer, ShouldBeTrue)
				So(rows[2].ProjectedTeamTotal, ShouldEqual, 100.0)
			})
		})
	})

	Convey("Given a scorer ID not among the candidates", t, func() {
		candidates := []testspot.Subtotal{
			{AthleteID: "a1", Points: 5},
			{AthleteID: "a2", Points: 9},
		}

		Convey("When comparing", func() {
			rows := testspot.Compare(candidates, "gone", 50)

			Convey("Then the first candidate is treated as the scorer", func() {
				for _, r := range rows {
					if r.AthleteID == "a1" {
						So(r.Scorer, ShouldBeTrue)
						So(r.ProjectedTeamTotal, ShouldEqual, 50.0)
					}
					if r.AthleteID == "a2" {
						So(r.Scorer, ShouldBeFalse)
						So(r.ProjectedTeamTotal, ShouldEqual, 54.0)
					}
				}
			})
		})
	})

	Convey("Given candidates tied on subtotal", t, func() {
		candidates := []testspot.Subtotal{
			{AthleteID: "a1", Points: 7},
			{AthleteID: "a2", Points: 7},
		}

		Convey("Then input order is preserved", func() {
			rows := testspot.Compare(candidates, "a1", 0)
			So(rows[0].AthleteID, ShouldEqual, "a1")
			So(rows[1].AthleteID, ShouldEqual, "a2")
		})
	})

	Convey("Given no candidates", t, func() {
		So(testspot.Compare(nil, "a1", 10), ShouldBeNil)
	})
}
