package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/PrishaShah30/AIProject/router"
	"github.com/PrishaShah30/AIProject/router/algo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedCampusData(t *testing.T) {
	campus, err := LoadCampusData(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Len(t, campus.Buildings, 9)
	assert.Len(t, campus.Stops, 5)
	assert.Equal(t, algo.Coord{Lat: 40.5230, Lon: -74.4580}, campus.Buildings["Tillet Hall"])
	assert.Equal(t, 85.0, campus.Distances["Quads Stop"]["The Quads (1, 2, 3)"])
}

func TestLoadCampusDataFromFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "campus.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
buildings:
  Hall: {lat: 40.1, lon: -74.1}
stops:
  Stop: {lat: 40.2, lon: -74.2}
distances:
  Stop:
    Hall: 12.5
`), 0644))
	p, err := NewPath(file)
	require.NoError(t, err)
	campus, err := LoadCampusData(context.Background(), "", p)
	require.NoError(t, err)
	assert.Equal(t, algo.Coord{Lat: 40.1, Lon: -74.1}, campus.Buildings["Hall"])
	assert.Equal(t, 12.5, campus.Distances["Stop"]["Hall"])
}

func TestLoadCampusDataRejectsEmptyFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(file, []byte("buildings: {}\n"), 0644))
	_, err := LoadCampusData(context.Background(), "", &Path{File: file})
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(file, []byte("buildings: [\n"), 0644))
	_, err = LoadCampusData(context.Background(), "", &Path{File: file})
	assert.Error(t, err)
}

func TestNaNCoordinateFailsGraphBuild(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nan.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
buildings:
  Hall: {lat: .nan, lon: -74.1}
stops:
  Stop: {lat: 40.2, lon: -74.2}
distances:
  Stop:
    Hall: 10
`), 0644))
	campus, err := LoadCampusData(context.Background(), "", &Path{File: file})
	require.NoError(t, err)
	r, err := router.New(campus, algo.HeuristicAnchor)
	assert.ErrorIs(t, err, algo.ErrInvalidCoord)
	assert.Nil(t, r)
}

func TestDocsToCampusData(t *testing.T) {
	campus, err := docsToCampusData([]campusDoc{
		{Class: CLASS_BUILDING, Name: "Hall", Lat: 40.1, Lon: -74.1},
		{Class: CLASS_STOP, Name: "Stop", Lat: 40.2, Lon: -74.2},
		{Class: CLASS_DISTANCE, Stop: "Stop", Building: "Hall", Distance: 30},
		// 后写入的距离覆盖前者
		{Class: CLASS_DISTANCE, Stop: "Stop", Building: "Hall", Distance: 40},
	})
	require.NoError(t, err)
	assert.Equal(t, algo.Coord{Lat: 40.2, Lon: -74.2}, campus.Stops["Stop"])
	assert.Equal(t, map[string]float64{"Hall": 40}, campus.Distances["Stop"])

	_, err = docsToCampusData([]campusDoc{{Class: "lane"}})
	assert.Error(t, err)
	_, err = docsToCampusData([]campusDoc{{Class: CLASS_BUILDING, Name: "Hall"}})
	assert.Error(t, err)
}
