package output

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoPingTimeout = 10 * time.Second

// MongoRecorder 将决策记录写入MongoDB集合
type MongoRecorder struct {
	client *mongo.Client
	col    *mongo.Collection
}

// NewMongoRecorder 连接MongoDB并校验连接
// 参数：uri-连接字符串，db-数据库名，col-集合名
func NewMongoRecorder(ctx context.Context, uri, db, col string) (*MongoRecorder, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, mongoPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping error: %w", err)
	}
	log.Infof("record decisions to mongo %s.%s", db, col)
	return &MongoRecorder{client: client, col: client.Database(db).Collection(col)}, nil
}

func (m *MongoRecorder) Record(ctx context.Context, r Record) error {
	if _, err := m.col.InsertOne(ctx, r); err != nil {
		return fmt.Errorf("mongo insert step %d error: %w", r.Step, err)
	}
	return nil
}

// Records 按步数顺序读取一次运行的全部记录
func (m *MongoRecorder) Records(ctx context.Context, runID string) ([]Record, error) {
	cursor, err := m.col.Find(ctx, bson.M{"run_id": runID}, options.Find().SetSort(bson.D{{Key: "step", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongo find error: %w", err)
	}
	defer cursor.Close(ctx)
	var records []Record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("mongo decode error: %w", err)
	}
	return records, nil
}

func (m *MongoRecorder) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
