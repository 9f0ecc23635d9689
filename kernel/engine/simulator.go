/*
	(c) Copyright NetFoundry Inc. Inc.

	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at

	https://www.apache.org/licenses/LICENSE-2.0

	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

package engine

import (
	"context"
	"strings"
	"time"

	"github.com/krishnagopinath/vuex-api-util/kernel/binding"
	"github.com/krishnagopinath/vuex-api-util/kernel/loader"
	"github.com/krishnagopinath/vuex-api-util/kernel/status"
	"github.com/krishnagopinath/vuex-api-util/kernel/store"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Simulator registers one binding per configured module on a store and
// drives each module's action against canned outcomes.
type Simulator struct {
	Store *store.MemoryStore
}

func NewSimulator(s *store.MemoryStore) *Simulator {
	return &Simulator{Store: s}
}

type Outcome struct {
	Namespace string
	Status    status.Status
	Data      any
	Err       error
	Elapsed   time.Duration
}

type Result struct {
	Outcomes  []Outcome
	Succeeded int
	Failed    int
}

// Register validates the simulation and registers a binding per module.
func (s *Simulator) Register(sim *loader.SimulationYaml) ([]*binding.Bindings, error) {
	if result := loader.Validate(sim); !result.IsValid() {
		msgs := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			msgs = append(msgs, e.String())
		}
		return nil, errors.Errorf("invalid simulation: %s", strings.Join(msgs, "; "))
	}

	bindings := make([]*binding.Bindings, 0, len(sim.Modules))
	for i, m := range sim.Modules {
		b, err := binding.NewFromValue(m.Namespace, binding.WithSetter(s.Store))
		if err != nil {
			return nil, errors.Wrapf(err, "module #%d", i)
		}
		if err := s.Store.RegisterModule(b); err != nil {
			return nil, errors.Wrapf(err, "module #%d", i)
		}
		bindings = append(bindings, b)
	}
	return bindings, nil
}

// Simulate runs every module's action, at most Concurrency at a time when
// set. Action failures are reported per module; with FailFast the first
// failure cancels the remaining actions and is returned.
func (s *Simulator) Simulate(ctx context.Context, sim *loader.SimulationYaml) (*Result, error) {
	bindings, err := s.Register(sim)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	if sim.Concurrency > 0 {
		g.SetLimit(sim.Concurrency)
	}

	outcomes := make([]Outcome, len(bindings))
	for i, b := range bindings {
		m := sim.Modules[i]
		g.Go(func() error {
			start := time.Now()
			data, err := b.RunAction(gctx, s.Store, fakeAction(m))
			outcomes[i] = Outcome{
				Namespace: b.Namespace(),
				Status:    s.statusOf(b),
				Data:      data,
				Err:       err,
				Elapsed:   time.Since(start),
			}
			if err != nil {
				logrus.Warnf("action for namespace [%s] failed: %v", b.Namespace(), err)
				if sim.FailFast {
					return errors.Wrapf(err, "namespace [%s]", b.Namespace())
				}
				return nil
			}
			logrus.Infof("action for namespace [%s] succeeded in %v", b.Namespace(), outcomes[i].Elapsed)
			return nil
		})
	}
	waitErr := g.Wait()

	result := &Result{Outcomes: outcomes}
	for _, o := range outcomes {
		if o.Err != nil {
			result.Failed++
		} else if o.Namespace != "" {
			result.Succeeded++
		}
	}
	return result, waitErr
}

func (s *Simulator) statusOf(b *binding.Bindings) status.Status {
	slice, ok := b.Slice(s.Store.State())
	if !ok {
		return ""
	}
	return slice.RequestStatus
}

func fakeAction(m loader.ModuleYaml) binding.Action {
	return func(ctx context.Context) (any, error) {
		if m.DelayDuration > 0 {
			timer := time.NewTimer(m.DelayDuration)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		if m.Outcome == loader.OutcomeError {
			msg := m.Error
			if msg == "" {
				msg = "simulated failure"
			}
			return nil, errors.New(msg)
		}
		return m.Data, nil
	}
}
