package testutil

import (
	"sync"

	"github.com/udisondev/frontdesk/internal/dialog"
	"github.com/udisondev/frontdesk/internal/model"
)

// FakeNavigator — навигатор без физики для unit тестов.
// Визитёр стоит на месте, пока тест не передвинет его через Teleport/Arrive/ArriveAll.
type FakeNavigator struct {
	mu        sync.Mutex
	pos       map[uint32]model.Point
	dest      map[uint32]model.Point
	held      map[uint32]bool
	removed   map[uint32]bool
	stalled   map[uint32]bool
	destCalls map[uint32]int
	holdCalls map[uint32]int
}

// NewFakeNavigator создаёт пустой FakeNavigator.
func NewFakeNavigator() *FakeNavigator {
	return &FakeNavigator{
		pos:       make(map[uint32]model.Point),
		dest:      make(map[uint32]model.Point),
		held:      make(map[uint32]bool),
		removed:   make(map[uint32]bool),
		stalled:   make(map[uint32]bool),
		destCalls: make(map[uint32]int),
		holdCalls: make(map[uint32]int),
	}
}

// Place ставит визитёра в точку.
func (n *FakeNavigator) Place(id uint32, p model.Point) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pos[id] = p
	delete(n.removed, id)
}

// SetDestination запоминает цель.
func (n *FakeNavigator) SetDestination(id uint32, p model.Point) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.dest[id] = p
	n.destCalls[id]++
}

// HasArrived сравнивает расстояние до цели с радиусом.
func (n *FakeNavigator) HasArrived(id uint32, radius float64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	d, ok := n.dest[id]
	if !ok || n.stalled[id] {
		return false
	}
	return n.pos[id].Distance(d) <= radius
}

// RemainingDistance возвращает расстояние до цели (0 без цели).
func (n *FakeNavigator) RemainingDistance(id uint32) float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	d, ok := n.dest[id]
	if !ok || n.stalled[id] {
		return 0
	}
	return n.pos[id].Distance(d)
}

// HoldMovement запоминает удержание.
func (n *FakeNavigator) HoldMovement(id uint32, hold bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.held[id] = hold
	n.holdCalls[id]++
}

// Position возвращает позицию.
func (n *FakeNavigator) Position(id uint32) (model.Point, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	p, ok := n.pos[id]
	return p, ok
}

// Remove удаляет визитёра.
func (n *FakeNavigator) Remove(id uint32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.pos, id)
	delete(n.dest, id)
	delete(n.held, id)
	n.removed[id] = true
}

// Teleport переносит визитёра в точку (игнорирует удержание).
func (n *FakeNavigator) Teleport(id uint32, p model.Point) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pos[id] = p
}

// Arrive переносит визитёра в его текущую цель, если он не удержан.
func (n *FakeNavigator) Arrive(id uint32) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	d, ok := n.dest[id]
	if !ok || n.held[id] {
		return false
	}
	n.pos[id] = d
	return true
}

// ArriveAll переносит всех неудержанных визитёров в их цели.
func (n *FakeNavigator) ArriveAll() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id, d := range n.dest {
		if !n.held[id] {
			n.pos[id] = d
		}
	}
}

// Stall имитирует сломанный маршрут: идти некуда, но и не пришёл.
func (n *FakeNavigator) Stall(id uint32, stalled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stalled[id] = stalled
}

// Destination возвращает текущую цель.
func (n *FakeNavigator) Destination(id uint32) (model.Point, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	d, ok := n.dest[id]
	return d, ok
}

// Held сообщает, удержан ли визитёр.
func (n *FakeNavigator) Held(id uint32) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.held[id]
}

// Removed сообщает, был ли визитёр удалён.
func (n *FakeNavigator) Removed(id uint32) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.removed[id]
}

// DestinationCalls возвращает число вызовов SetDestination.
func (n *FakeNavigator) DestinationCalls(id uint32) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.destCalls[id]
}

// HoldCalls возвращает число вызовов HoldMovement.
func (n *FakeNavigator) HoldCalls(id uint32) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.holdCalls[id]
}

// ShownNode — одна запись RecordingRenderer.
type ShownNode struct {
	VisitorID uint32
	Node      dialog.Node
	Text      string
}

// RecordingRenderer записывает показанные панели.
type RecordingRenderer struct {
	mu      sync.Mutex
	Shown   []ShownNode
	Hides   int
	visible map[uint32]dialog.Node
}

// NewRecordingRenderer создаёт RecordingRenderer.
func NewRecordingRenderer() *RecordingRenderer {
	return &RecordingRenderer{visible: make(map[uint32]dialog.Node)}
}

// ShowNode записывает показ панели.
func (r *RecordingRenderer) ShowNode(id uint32, node dialog.Node, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Shown = append(r.Shown, ShownNode{VisitorID: id, Node: node, Text: text})
	r.visible[id] = node
}

// Hide скрывает панель.
func (r *RecordingRenderer) Hide(id uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.visible[id]; ok {
		r.Hides++
	}
	delete(r.visible, id)
}

// Visible возвращает видимую панель визитёра.
func (r *RecordingRenderer) Visible(id uint32) (dialog.Node, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.visible[id]
	return n, ok
}

// ShownNodes возвращает узлы, показанные визитёру, по порядку.
func (r *RecordingRenderer) ShownNodes(id uint32) []dialog.Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []dialog.Node
	for _, s := range r.Shown {
		if s.VisitorID == id {
			out = append(out, s.Node)
		}
	}
	return out
}

// NodeTexts возвращает имя узла как текст панели.
type NodeTexts struct{}

// Text возвращает "<role>:<node>".
func (NodeTexts) Text(role model.Role, node dialog.Node, _ map[string]any) (string, error) {
	return role.String() + ":" + string(node), nil
}

// FakeInventory — руки игрока со счётчиками вызовов.
type FakeInventory struct {
	mu          sync.Mutex
	item        *model.Item
	AddCalls    int
	RemoveCalls int
}

// NewFakeInventory создаёт инвентарь с предметом (или пустой при nil).
func NewFakeInventory(item *model.Item) *FakeInventory {
	return &FakeInventory{item: item}
}

// HasItem сообщает, занят ли слот.
func (i *FakeInventory) HasItem() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.item != nil
}

// CurrentItem возвращает предмет в руках.
func (i *FakeInventory) CurrentItem() *model.Item {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.item
}

// AddItem кладёт предмет, если руки свободны.
func (i *FakeInventory) AddItem(item *model.Item) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.AddCalls++
	if i.item != nil {
		return false
	}
	i.item = item
	return true
}

// RemoveItem забирает предмет.
func (i *FakeInventory) RemoveItem() *model.Item {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.RemoveCalls++
	item := i.item
	i.item = nil
	return item
}

// Effects возвращает общее число изменений инвентаря.
func (i *FakeInventory) Effects() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.AddCalls + i.RemoveCalls
}

// FakeWallet считает изменения баланса.
type FakeWallet struct {
	Balance int64
	Calls   int
}

// Adjust меняет баланс.
func (w *FakeWallet) Adjust(amount int64) int64 {
	w.Calls++
	w.Balance += amount
	return w.Balance
}

// FakeReputation считает изменения репутации.
type FakeReputation struct {
	Value int
	Calls int
}

// Adjust меняет репутацию.
func (r *FakeReputation) Adjust(delta int) int {
	r.Calls++
	r.Value += delta
	return r.Value
}

// FakeExperience записывает начисления опыта.
type FakeExperience struct {
	Total   int
	Reasons []string
}

// Award начисляет опыт.
func (e *FakeExperience) Award(amount int, reason string) {
	e.Total += amount
	e.Reasons = append(e.Reasons, reason)
}
