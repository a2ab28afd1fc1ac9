package testutil

import (
	"github.com/udisondev/frontdesk/internal/model"
)

// Fixtures содержит типовую раскладку зала для тестов.
// Дверь на линии между точкой появления и стойкой, очередь уходит назад от двери.
var Fixtures = struct {
	Spawn    model.Point
	Door     model.Point
	Approach model.Point
	Exit     model.Point
	QueueDir model.Point
	Spacing  float64
}{
	Spawn:    model.NewPoint(0, 0, -20),
	Door:     model.NewPoint(0, 0, -10),
	Approach: model.NewPoint(0, 0, 0),
	Exit:     model.NewPoint(0, 0, -20),
	QueueDir: model.NewPoint(1, 0, 0),
	Spacing:  2,
}

// NewStation создаёт полностью настроенную станцию.
// withDoor=false — станция без двери.
func NewStation(name string, capacity int, withDoor bool) *model.Station {
	st := model.NewStation(name, capacity)
	st.SetApproachPoint(Fixtures.Approach)
	st.SetExitPoint(Fixtures.Exit)
	st.SetSpawnPoint(Fixtures.Spawn)
	st.SetQueueLayout(Fixtures.QueueDir, Fixtures.Spacing)
	if withDoor {
		st.SetDoorWaypoint(Fixtures.Door)
	}
	return st
}

// MustItem создаёт предмет или паникует.
func MustItem(id int32, name string, contraband bool) *model.Item {
	item, err := model.NewItem(id, name, name+" description. Second sentence. Third.", contraband)
	if err != nil {
		panic(err)
	}
	return item
}
