// Package calibration implements CalibrationStorage as its own module with
// Get/Update messages, per the design note's preferred alternative to a
// readers-writer lock: the calibration record lives only inside this
// module's own task and is mutated only by its own goroutine. Persistence
// is backed by MongoDB, adapted from the teacher server's
// database/mongodb.go connection setup.
package calibration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/golang/geo/r3"

	"roverctl/internal/bus"
	"roverctl/internal/rovererr"
	"roverctl/internal/rovertypes"
	"roverctl/shared"
)

const collectionName = "calibration"
const documentID = "current"

// RequestKind distinguishes a read from a write.
type RequestKind int

const (
	Get RequestKind = iota
	Update
)

// Request is the single message type this module accepts; ResponsesTo is
// only used for Get (Update has no response, matching the original's
// one-way semantics).
type Request struct {
	Kind        RequestKind
	Data        rovertypes.CalibrationData
	ResponsesTo chan<- rovertypes.CalibrationData
}

// Module owns the single CalibrationData record for the process lifetime.
type Module struct {
	bus.Base

	Requests <-chan Request

	client     *mongo.Client
	collection *mongo.Collection
	current    rovertypes.CalibrationData
}

// New does not dial MongoDB; call Connect before Run.
func New(logCh chan<- rovertypes.LogRecord, requests <-chan Request) *Module {
	return &Module{
		Base:     bus.NewBase("CalibrationStorage", logCh),
		Requests: requests,
		current:  rovertypes.DefaultCalibration(),
	}
}

// Connect dials MongoDB with the same pooling settings as the teacher
// server's MongodbHandler, and seeds the store with defaults if no
// document yet exists. Connection failure degrades this module to its
// in-memory defaults for the run rather than aborting startup.
func (m *Module) Connect(ctx context.Context, uri, database string) error {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPI).
		SetMaxPoolSize(shared.MONGODB_MAX_POOL_SIZE).
		SetMinPoolSize(shared.MONGODB_MIN_POOL_SIZE).
		SetRetryWrites(true).
		SetRetryReads(true)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", rovererr.ErrCalibrationUnavailable, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("%w: %v", rovererr.ErrCalibrationUnavailable, err)
	}

	m.client = client
	m.collection = client.Database(database).Collection(collectionName)

	return m.loadOrSeed(ctx)
}

type calibrationDoc struct {
	ID             string    `bson:"_id"`
	WheelDiameter  float64   `bson:"wheel_diameter"`
	WheelBase      float64   `bson:"wheel_base"`
	MaxLinearSpeed float64   `bson:"max_linear_speed"`
	MaxAngularVel  float64   `bson:"max_angular_vel"`
	SensorOffsets  [][3]float64 `bson:"sensor_offsets"`
}

func (m *Module) loadOrSeed(ctx context.Context) error {
	var doc calibrationDoc
	err := m.collection.FindOne(ctx, bson.M{"_id": documentID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		m.current = rovertypes.DefaultCalibration()
		if _, insertErr := m.collection.InsertOne(ctx, docFromCalibration(m.current)); insertErr != nil {
			return fmt.Errorf("%w: %v", rovererr.ErrCalibrationUnavailable, insertErr)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", rovererr.ErrCalibrationUnavailable, err)
	}

	m.current = calibrationFromDoc(doc)
	return nil
}

func docFromCalibration(c rovertypes.CalibrationData) calibrationDoc {
	offsets := make([][3]float64, len(c.SensorOffsets))
	for i, v := range c.SensorOffsets {
		offsets[i] = [3]float64{v.X, v.Y, v.Z}
	}
	return calibrationDoc{
		ID:             documentID,
		WheelDiameter:  c.WheelDiameter,
		WheelBase:      c.WheelBase,
		MaxLinearSpeed: c.MaxLinearSpeed,
		MaxAngularVel:  c.MaxAngularVel,
		SensorOffsets:  offsets,
	}
}

func calibrationFromDoc(doc calibrationDoc) rovertypes.CalibrationData {
	out := rovertypes.CalibrationData{
		WheelDiameter:  doc.WheelDiameter,
		WheelBase:      doc.WheelBase,
		MaxLinearSpeed: doc.MaxLinearSpeed,
		MaxAngularVel:  doc.MaxAngularVel,
	}
	for _, v := range doc.SensorOffsets {
		out.SensorOffsets = append(out.SensorOffsets, r3.Vector{X: v[0], Y: v[1], Z: v[2]})
	}
	return out
}

func (m *Module) Run(ctx context.Context) {
	m.Log(ctx, rovertypes.LevelInfo, "Starting calibration storage")

	for {
		select {
		case <-ctx.Done():
			m.Log(ctx, rovertypes.LevelInfo, "Shutdown signal received")
			if m.client != nil {
				_ = m.client.Disconnect(context.Background())
			}
			m.Stopped()
			return
		case req := <-m.Requests:
			m.handle(ctx, req)
		}
	}
}

func (m *Module) handle(ctx context.Context, req Request) {
	switch req.Kind {
	case Get:
		select {
		case req.ResponsesTo <- m.current:
		case <-ctx.Done():
		}
	case Update:
		m.current = req.Data
		if m.collection != nil {
			_, err := m.collection.ReplaceOne(ctx, bson.M{"_id": documentID}, docFromCalibration(m.current))
			if err != nil {
				m.Log(ctx, rovertypes.LevelError, "Failed to persist calibration update: "+err.Error())
			}
		}
		m.Log(ctx, rovertypes.LevelInfo, "Calibration data updated")
	}
}
