package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"git.fiblab.net/general/common/v2/mongoutil"
	"github.com/PrishaShah30/AIProject/router"
	"github.com/PrishaShah30/AIProject/router/algo"
	"go.mongodb.org/mongo-driver/bson"
	"gopkg.in/yaml.v3"
)

//go:embed data/livingston.yaml
var embeddedCampusData []byte

const (
	CLASS_BUILDING = "building"
	CLASS_STOP     = "stop"
	CLASS_DISTANCE = "distance"
)

// campusDoc is one document of the campus collection:
// {class: building|stop, name, lat, lon} or {class: distance, stop, building, distance}.
type campusDoc struct {
	Class    string  `bson:"class"`
	Name     string  `bson:"name,omitempty"`
	Lat      float64 `bson:"lat,omitempty"`
	Lon      float64 `bson:"lon,omitempty"`
	Stop     string  `bson:"stop,omitempty"`
	Building string  `bson:"building,omitempty"`
	Distance float64 `bson:"distance,omitempty"`
}

func decodeCampusYAML(data []byte) (*router.CampusData, error) {
	var campus router.CampusData
	if err := yaml.Unmarshal(data, &campus); err != nil {
		return nil, fmt.Errorf("failed to decode campus data: %w", err)
	}
	if len(campus.Distances) == 0 {
		return nil, fmt.Errorf("campus data has no distances")
	}
	return &campus, nil
}

func docsToCampusData(docs []campusDoc) (*router.CampusData, error) {
	campus := &router.CampusData{
		Buildings: make(map[string]algo.Coord),
		Stops:     make(map[string]algo.Coord),
		Distances: make(map[string]map[string]float64),
	}
	for _, doc := range docs {
		switch doc.Class {
		case CLASS_BUILDING:
			campus.Buildings[doc.Name] = algo.Coord{Lat: doc.Lat, Lon: doc.Lon}
		case CLASS_STOP:
			campus.Stops[doc.Name] = algo.Coord{Lat: doc.Lat, Lon: doc.Lon}
		case CLASS_DISTANCE:
			row, ok := campus.Distances[doc.Stop]
			if !ok {
				row = make(map[string]float64)
				campus.Distances[doc.Stop] = row
			}
			if old, ok := row[doc.Building]; ok && old != doc.Distance {
				log.Warnf("conflicting distances %v and %v between %q and %q, keep the latter",
					old, doc.Distance, doc.Stop, doc.Building)
			}
			row[doc.Building] = doc.Distance
		default:
			return nil, fmt.Errorf("unknown campus document class: %q", doc.Class)
		}
	}
	if len(campus.Distances) == 0 {
		return nil, fmt.Errorf("campus data has no distances")
	}
	return campus, nil
}

func downloadCampusData(ctx context.Context, mongoURI string, p *Path) (*router.CampusData, error) {
	client := mongoutil.NewClient(mongoURI)
	defer client.Disconnect(context.Background())
	cur, err := mongoutil.GetMongoColl(client, p).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", p, err)
	}
	var docs []campusDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", p, err)
	}
	return docsToCampusData(docs)
}

// LoadCampusData reads the campus tables from a file, a MongoDB collection or the embedded dataset.
func LoadCampusData(ctx context.Context, mongoURI string, p *Path) (*router.CampusData, error) {
	switch {
	case p == nil:
		log.Info("load embedded Livingston campus data")
		return decodeCampusYAML(embeddedCampusData)
	case p.File != "":
		log.Infof("load campus data from %s", p.File)
		data, err := os.ReadFile(p.File)
		if err != nil {
			return nil, err
		}
		return decodeCampusYAML(data)
	default:
		log.Infof("download campus data from %s", p)
		return downloadCampusData(ctx, mongoURI, p)
	}
}
