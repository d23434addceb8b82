package classifier

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/intentclassifier/vector"
)

type fakeModel struct {
	n      int
	score  float32
	out    [][]float32
	err    error
	panics bool

	mu     sync.Mutex
	calls  int
	closes int
	last   []float32
}

func (m *fakeModel) InputLen() int { return m.n }

func (m *fakeModel) Infer(input []float32) ([][]float32, error) {
	m.mu.Lock()
	m.calls++
	m.last = input
	m.mu.Unlock()
	if m.panics {
		panic("native failure")
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.out != nil {
		return m.out, nil
	}
	return [][]float32{{m.score}}, nil
}

func (m *fakeModel) Close() error {
	m.closes++
	return nil
}

func TestPredictEndToEnd(t *testing.T) {
	v, err := vector.DecodeLine("1, 0, 1", 3)
	require.NoError(t, err)

	m := &fakeModel{n: 3, score: 0.9}
	inv := New(m)
	r, err := inv.Predict(v)
	require.NoError(t, err)
	assert.Equal(t, Malware, r.Label)
	assert.Equal(t, float32(0.9), r.Score)
	assert.Equal(t, DefaultThreshold, r.Threshold)
	assert.Equal(t, "Prediction: Malware", r.String())
	assert.Equal(t, []float32{1, 0, 1}, m.last)
}

func TestThresholdIsStrict(t *testing.T) {
	for _, tc := range []struct {
		score float32
		want  Label
	}{
		{0.50001, Malware},
		{0.5, Benign},
		{0.49999, Benign},
		{1, Malware},
		{0, Benign},
		{float32(math.NaN()), Benign},
	} {
		inv := New(&fakeModel{n: 2, score: tc.score})
		r, err := inv.Predict(vector.FeatureVector{0, 1})
		require.NoError(t, err)
		assert.Equal(t, tc.want, r.Label, "score %v", tc.score)
		assert.Equal(t, tc.want, Decide(tc.score, DefaultThreshold))
	}
}

func TestWithThreshold(t *testing.T) {
	inv := New(&fakeModel{n: 1, score: 0.7}, WithThreshold(0.8))
	r, err := inv.Predict(vector.FeatureVector{1})
	require.NoError(t, err)
	assert.Equal(t, Benign, r.Label)
	assert.Equal(t, float32(0.8), inv.Threshold())
}

func TestShapeMismatchSkipsModel(t *testing.T) {
	m := &fakeModel{n: 34, score: 1}
	inv := New(m)
	_, err := inv.Predict(make(vector.FeatureVector, 51))
	var ie *InferenceError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, ShapeMismatch, ie.Kind)
	assert.Equal(t, 34, ie.Expected)
	assert.Equal(t, 51, ie.Actual)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	assert.Zero(t, m.calls)

	inv = New(m, WithExpectedLength(51))
	_, err = inv.Predict(make(vector.FeatureVector, 51))
	assert.NoError(t, err)
}

func TestClosedSkipsModel(t *testing.T) {
	m := &fakeModel{n: 2, score: 1}
	inv := New(m)
	assert.Equal(t, Loaded, inv.State())
	require.NoError(t, inv.Close())
	require.NoError(t, inv.Close())
	assert.Equal(t, 1, m.closes)
	assert.Equal(t, Closed, inv.State())

	_, err := inv.Predict(vector.FeatureVector{1, 1})
	assert.ErrorIs(t, err, ErrInvokerClosed)
	assert.Zero(t, m.calls)
}

func TestUnloaded(t *testing.T) {
	inv := New(nil)
	assert.Equal(t, Unloaded, inv.State())
	_, err := inv.Predict(vector.FeatureVector{})
	assert.ErrorIs(t, err, ErrInvokerClosed)
	assert.NoError(t, inv.Close())
	assert.Equal(t, Closed, inv.State())
}

func TestUnderlyingErrors(t *testing.T) {
	cause := errors.New("corrupt model")
	for name, m := range map[string]*fakeModel{
		"error":  {n: 1, err: cause},
		"panic":  {n: 1, panics: true},
		"empty":  {n: 1, out: [][]float32{}},
		"noitem": {n: 1, out: [][]float32{{}}},
	} {
		_, err := New(m).Predict(vector.FeatureVector{1})
		var ie *InferenceError
		require.True(t, errors.As(err, &ie), name)
		assert.Equal(t, Underlying, ie.Kind, name)
		assert.ErrorIs(t, err, ErrUnderlying, name)
		assert.NotEmpty(t, ie.Err.Error(), name)
	}
	_, err := New(&fakeModel{n: 1, err: cause}).Predict(vector.FeatureVector{1})
	assert.ErrorIs(t, err, cause)
}

func TestPredictConcurrentWithClose(t *testing.T) {
	m := &fakeModel{n: 2, score: 0.6}
	inv := New(m)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < 100; k++ {
				_, err := inv.Predict(vector.FeatureVector{1, 0})
				if err != nil && !errors.Is(err, ErrInvokerClosed) {
					t.Errorf("unexpected error %v", err)
					return
				}
			}
		}()
	}
	require.NoError(t, inv.Close())
	wg.Wait()
	assert.Equal(t, 1, m.closes)
}
