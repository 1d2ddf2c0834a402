package main

import (
	"flag"
	"math/rand"
	"time"

	"github.com/bisnad/ofxDabSpace"
	"github.com/sirupsen/logrus"
)

func main() {
	rand.Seed(time.Now().Unix())
	objectCount := flag.Int("objects", 200, "number of objects to scatter into the space")
	ticks := flag.Int("ticks", 5, "number of Update ticks to run")
	radius := flag.Float64("radius", 8.0, "admission policy search radius")
	cap := flag.Int("cap", 6, "admission policy neighbor cap")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	entry := log.WithField("cmd", "demo")

	tree, err := space.NewNTree(space.NewVector(3), space.Vector{100, 100, 100})
	if err != nil {
		entry.WithError(err).Fatal("failed to create n-tree")
	}

	s := space.NewSpace("scatter", tree, space.WithLogger(entry))
	manager := space.NewSpaceManager(space.WithLogger(entry))
	if err := manager.AddSpace(s); err != nil {
		entry.WithError(err).Fatal("failed to register space")
	}

	clusters := space.NewClusterAnalyzer()
	if err := manager.AddAnalyzer("scatter", clusters); err != nil {
		entry.WithError(err).Fatal("failed to register analyzer")
	}

	policy := space.NewAdmissionPolicy(
		space.WithRadius(*radius),
		space.WithCap(*cap),
		space.WithReplaceFarther(true),
	)
	for i := 0; i < *objectCount; i++ {
		pos := space.Vector{rand.Float64() * 100, rand.Float64() * 100, rand.Float64() * 100}
		obj := space.NewSpaceObjectAt(pos)
		if err := s.AddObject(obj, true, policy); err != nil {
			entry.WithError(err).Fatal("failed to add object")
		}
	}

	for t := 0; t < *ticks; t++ {
		if err := manager.UpdateAll(); err != nil {
			entry.WithError(err).Fatal("update failed")
		}
	}

	if err := manager.RunAnalyzers(); err != nil {
		entry.WithError(err).Fatal("analysis failed")
	}

	entry.WithField("clusters", len(clusters.Clusters())).Info("scatter settled")
	for i, members := range clusters.Clusters() {
		entry.WithFields(logrus.Fields{"cluster": i, "size": len(members)}).Info("cluster")
	}
}
