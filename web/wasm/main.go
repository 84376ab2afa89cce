//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/harmonic-denoise/dsp/pipeline"
	"github.com/cwbudde/harmonic-denoise/internal/webdemo"
)

var (
	engine *webdemo.Engine
	funcs  []js.Func
)

func main() {
	api := js.Global().Get("Object").New()
	api.Set("init", export(func(args []js.Value) any {
		var opts []webdemo.Option
		if len(args) > 0 && args[0].Type() == js.TypeNumber {
			opts = append(opts, webdemo.WithSeed(uint64(args[0].Int())))
		}
		e, err := webdemo.NewEngine(opts...)
		if err != nil {
			return err.Error()
		}
		engine = e
		return js.Null()
	}))

	api.Set("defaults", export(func(args []js.Value) any {
		return requestToJS(pipeline.DefaultRequest())
	}))

	api.Set("evaluate", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		res, err := engine.Update(requestFromJS(args[0], engine.Request()))
		if err != nil {
			return err.Error()
		}
		return resultToJS(res)
	}))

	api.Set("regenerate", export(func(args []js.Value) any {
		if engine == nil {
			return js.Null()
		}
		res, err := engine.Regenerate()
		if err != nil {
			return err.Error()
		}
		return resultToJS(res)
	}))

	api.Set("reset", export(func(args []js.Value) any {
		if engine == nil {
			return js.Null()
		}
		res, err := engine.Reset()
		if err != nil {
			return err.Error()
		}
		return resultToJS(res)
	}))

	api.Set("request", export(func(args []js.Value) any {
		if engine == nil {
			return js.Null()
		}
		return requestToJS(engine.Request())
	}))

	api.Set("responseCurve", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return float64Array(nil)
		}
		input := args[0]
		freqs := make([]float64, input.Length())
		for i := 0; i < input.Length(); i++ {
			freqs[i] = input.Index(i).Float()
		}
		resp, err := engine.ResponseCurveDB(freqs)
		if err != nil {
			return err.Error()
		}
		return float64Array(resp)
	}))

	api.Set("summary", export(func(args []js.Value) any {
		if engine == nil {
			return js.Null()
		}
		s, err := engine.Summary()
		if err != nil {
			return err.Error()
		}
		obj := js.Global().Get("Object").New()
		obj.Set("cleanStd", s.CleanStd)
		obj.Set("noisyStd", s.NoisyStd)
		obj.Set("filteredStd", s.FilteredStd)
		obj.Set("rmse", s.Error.RMSE)
		obj.Set("snrDB", s.Error.SNR_dB)
		obj.Set("cleanPeak", s.CleanPeak)
		obj.Set("filteredPeak", s.FilteredPeak)
		obj.Set("noisyCentroid", s.NoisyCentroid)
		obj.Set("filteredCentroid", s.FilteredCentroid)
		obj.Set("filteredRolloff", s.FilteredRolloff)
		obj.Set("filteredBandwidth", s.FilteredBandwidth)
		return obj
	}))

	js.Global().Set("HarmonicDenoiseDemo", api)
	select {}
}

// requestFromJS reads the known fields of v; missing fields keep the
// value from base.
func requestFromJS(v js.Value, base pipeline.Request) pipeline.Request {
	r := base
	num := func(name string, dst *float64) {
		if f := v.Get(name); f.Type() == js.TypeNumber {
			*dst = f.Float()
		}
	}
	num("amplitude", &r.Amplitude)
	num("frequency", &r.Frequency)
	num("phase", &r.Phase)
	num("noiseMean", &r.NoiseMean)
	num("noiseVariance", &r.NoiseVariance)
	num("cutoff", &r.CutoffFrequency)
	if f := v.Get("window"); f.Type() == js.TypeNumber {
		r.WindowWidth = f.Int()
	}
	if f := v.Get("filter"); f.Type() == js.TypeString {
		r.FilterKind = pipeline.FilterKind(f.String())
	}
	if f := v.Get("showNoise"); f.Type() == js.TypeBoolean {
		r.ShowNoise = f.Bool()
	}
	return r
}

func requestToJS(r pipeline.Request) js.Value {
	obj := js.Global().Get("Object").New()
	obj.Set("amplitude", r.Amplitude)
	obj.Set("frequency", r.Frequency)
	obj.Set("phase", r.Phase)
	obj.Set("noiseMean", r.NoiseMean)
	obj.Set("noiseVariance", r.NoiseVariance)
	obj.Set("filter", string(r.FilterKind))
	obj.Set("cutoff", r.CutoffFrequency)
	obj.Set("window", r.WindowWidth)
	obj.Set("showNoise", r.ShowNoise)
	return obj
}

func resultToJS(res pipeline.Result) js.Value {
	obj := js.Global().Get("Object").New()
	obj.Set("time", float64Array(res.Time))
	obj.Set("clean", float64Array(res.Clean))
	obj.Set("noisy", float64Array(res.Noisy))
	obj.Set("filtered", float64Array(res.Filtered))
	return obj
}

func float64Array(x []float64) js.Value {
	arr := js.Global().Get("Float64Array").New(len(x))
	for i, v := range x {
		arr.SetIndex(i, v)
	}
	return arr
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
