package kafka

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"max.ks1230/finance-tracker/internal/entity/event"
)

const (
	fieldType     = "type"
	fieldKind     = "kind"
	fieldAction   = "action"
	fieldID       = "id"
	fieldCurrency = "currency"
)

var ErrNoEventType = errors.New("event has no type")

func encodeEvent(ev event.Event) ([]byte, error) {
	payload, err := structpb.NewStruct(map[string]interface{}{
		fieldType:     ev.Type,
		fieldKind:     ev.Kind,
		fieldAction:   ev.Action,
		fieldID:       ev.ID,
		fieldCurrency: ev.Currency,
	})
	if err != nil {
		return nil, errors.Wrap(err, "encode event")
	}
	data, err := proto.Marshal(payload)
	return data, errors.Wrap(err, "encode event")
}

func decodeEvent(data []byte) (event.Event, error) {
	var payload structpb.Struct
	if err := proto.Unmarshal(data, &payload); err != nil {
		return event.Event{}, errors.Wrap(err, "decode event")
	}
	fields := payload.GetFields()
	ev := event.Event{
		Type:     fields[fieldType].GetStringValue(),
		Kind:     fields[fieldKind].GetStringValue(),
		Action:   fields[fieldAction].GetStringValue(),
		ID:       fields[fieldID].GetStringValue(),
		Currency: fields[fieldCurrency].GetStringValue(),
	}
	if ev.Type == "" {
		return event.Event{}, ErrNoEventType
	}
	return ev, nil
}
