package repo

import (
	"context"
	"log"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hari-dev-003/Achieve/app/model"
)

// SnapshotFunc re-runs a live query and returns the full current result set.
type SnapshotFunc func(ctx context.Context) ([]model.Achievement, error)

// Subscription is the handle returned by a live query. Cancel is idempotent
// and guarantees that no delivery happens after it returns; consumers treat
// every delivery as an authoritative snapshot and replace prior state.
type Subscription struct {
	stop context.CancelFunc
	done chan struct{}

	mu       sync.Mutex
	canceled bool
}

func newSubscription(stop context.CancelFunc) *Subscription {
	return &Subscription{
		stop: stop,
		done: make(chan struct{}),
	}
}

func (s *Subscription) Cancel() {
	s.mu.Lock()
	if s.canceled {
		s.mu.Unlock()
		<-s.done
		return
	}
	s.canceled = true
	s.mu.Unlock()

	s.stop()
	<-s.done
}

// Done is closed once the delivery loop has fully exited.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// deliver invokes cb unless the subscription was canceled. The callback runs
// under the mutex, so Cancel cannot return while a delivery is in flight.
func (s *Subscription) deliver(cb func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.canceled {
		return
	}
	cb()
}

// runSubscription emits an initial snapshot, then one snapshot per change
// event until advance reports the stream is exhausted or canceled.
func runSubscription(ctx context.Context, sub *Subscription, advance func(context.Context) bool, fetch SnapshotFunc, deliver func([]model.Achievement)) {
	defer close(sub.done)

	emit := func() {
		snap, err := fetch(ctx)
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("live query snapshot failed: %v", err)
			}
			return
		}
		sub.deliver(func() { deliver(snap) })
	}

	emit()
	for advance(ctx) {
		emit()
	}
}

// WatchPendingByClass opens a change-stream backed live query over one class
// partition's pending queue. Every relevant change re-delivers the complete,
// re-sorted pending set.
func (r *AchievementRepo) WatchPendingByClass(ctx context.Context, class model.ClassKey, deliver func([]model.Achievement)) (*Subscription, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "operationType", Value: "delete"}},
			bson.D{
				{Key: "fullDocument.department", Value: class.Department},
				{Key: "fullDocument.year", Value: class.Year},
				{Key: "fullDocument.section", Value: class.Section},
			},
		}}}}},
	}

	streamCtx, stop := context.WithCancel(ctx)
	stream, err := r.coll.Watch(streamCtx, pipeline,
		options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		stop()
		return nil, err
	}

	sub := newSubscription(stop)
	fetch := func(c context.Context) ([]model.Achievement, error) {
		return r.FindPendingByClass(c, class)
	}

	go func() {
		defer stream.Close(context.Background())
		runSubscription(streamCtx, sub, stream.Next, fetch, deliver)
	}()

	return sub, nil
}
