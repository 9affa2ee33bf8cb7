//go:build js && wasm

// Command wasm exposes the image batch processor to JavaScript.
//
// Build with GOOS=js GOARCH=wasm and load through wasm_exec.js. The module
// registers a global ImageProcessor constructor:
//
//	const p = new ImageProcessor();
//	const err = p.add_image_from_base64(dataURL);
//	if (err instanceof Error) { ... }
//	p.resize_images(1600, 1600);
//	const jpegs = p.encode_as_jpeg(85);
//	p.free();
//
// Recoverable failures are returned as Error objects with a "kind" property
// ("MalformedInput", "DecodeError" or "EncodeError").
package main

import (
	"fmt"
	"syscall/js"

	"github.com/pkg/errors"

	"github.com/nvr-ai/ocr-prep/config"
	"github.com/nvr-ai/ocr-prep/faults"
	"github.com/nvr-ai/ocr-prep/processor"
)

func main() {
	faults.Install(consoleReporter)

	constructor := js.FuncOf(newImageProcessor)
	js.Global().Set("ImageProcessor", constructor)

	select {}
}

// consoleReporter writes faults to console.error so they show up in the
// browser instead of the module silently dying.
func consoleReporter(f *faults.Fault) {
	js.Global().Get("console").Call("error", fmt.Sprintf("ocr-prep: %+v", f.Err))
}

func newImageProcessor(_ js.Value, args []js.Value) interface{} {
	cfg := config.Default()
	if len(args) > 0 && args[0].Type() == js.TypeObject {
		cfg = configFromJS(args[0], cfg)
	}

	p := processor.New(&cfg, nil)
	obj := js.Global().Get("Object").New()

	var funcs []js.Func
	bind := func(name string, fn func(args []js.Value) interface{}) {
		f := js.FuncOf(func(_ js.Value, args []js.Value) (result interface{}) {
			faults.Guard(func() { result = fn(args) })
			return result
		})
		funcs = append(funcs, f)
		obj.Set(name, f)
	}

	bind("add_image_from_base64", func(args []js.Value) interface{} {
		if len(args) < 1 || args[0].Type() != js.TypeString {
			return jsError(errors.New("add_image_from_base64 expects a string"))
		}
		if err := p.AddBase64(args[0].String()); err != nil {
			return jsError(err)
		}
		return js.Undefined()
	})
	bind("resize_images", func(args []js.Value) interface{} {
		p.Resize(uintArg(args, 0), uintArg(args, 1))
		return js.Undefined()
	})
	bind("encode_as_jpeg", func(args []js.Value) interface{} {
		out, err := p.EncodeJPEG(int(uintArg(args, 0)))
		if err != nil {
			return jsError(err)
		}
		return stringArray(out)
	})
	bind("optimize", func([]js.Value) interface{} {
		out, err := p.Optimize()
		if err != nil {
			return jsError(err)
		}
		return stringArray(out)
	})
	bind("image_count", func([]js.Value) interface{} {
		return p.Count()
	})
	bind("get_image_sizes", func([]js.Value) interface{} {
		return stringArray(p.Sizes())
	})
	bind("clear", func([]js.Value) interface{} {
		p.Clear()
		return js.Undefined()
	})

	// free releases the Go callbacks; the instance is unusable afterwards.
	var free js.Func
	free = js.FuncOf(func(js.Value, []js.Value) interface{} {
		p.Clear()
		for _, f := range funcs {
			f.Release()
		}
		free.Release()
		return js.Undefined()
	})
	obj.Set("free", free)

	return obj
}

func configFromJS(v js.Value, cfg config.Config) config.Config {
	if w := v.Get("maxWidth"); w.Type() == js.TypeNumber {
		cfg.MaxWidth = w.Int()
	}
	if h := v.Get("maxHeight"); h.Type() == js.TypeNumber {
		cfg.MaxHeight = h.Int()
	}
	if q := v.Get("quality"); q.Type() == js.TypeNumber {
		cfg.Quality = q.Int()
	}
	if d := v.Get("debug"); d.Type() == js.TypeBoolean {
		cfg.Debug = d.Bool()
	}
	return cfg
}

// uintArg reads a non-negative integer argument; missing, non-numeric and
// negative values read as 0.
func uintArg(args []js.Value, i int) uint32 {
	if i >= len(args) || args[i].Type() != js.TypeNumber {
		return 0
	}
	n := args[i].Int()
	if n < 0 {
		return 0
	}
	return uint32(n)
}

func stringArray(values []string) js.Value {
	arr := make([]interface{}, len(values))
	for i, v := range values {
		arr[i] = v
	}
	return js.ValueOf(arr)
}

func jsError(err error) js.Value {
	jsErr := js.Global().Get("Error").New(err.Error())
	var perr *processor.Error
	if errors.As(err, &perr) {
		jsErr.Set("kind", perr.Kind.String())
	}
	return jsErr
}
