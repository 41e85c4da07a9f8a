package classifier

import (
	"context"
	"fmt"
	"os"

	ort "github.com/yalue/onnxruntime_go"

	"classifyd/internal/imageproc"
	"classifyd/pkg/types"
)

// ONNXLoader loads models with ONNX Runtime. The runtime environment is
// process-wide and initialized on first Load.
type ONNXLoader struct {
	// LibraryPath points at the onnxruntime shared library. Empty uses the
	// runtime's default lookup.
	LibraryPath string
	// IntraOpThreads bounds per-inference parallelism (0 = runtime default).
	IntraOpThreads int
	// InputName and OutputName select graph nodes; empty picks the first one.
	InputName  string
	OutputName string
}

// Load implements Loader.
func (l *ONNXLoader) Load(path string, inputShape []int64) (Model, error) {
	if fi, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("model artifact: %w", err)
	} else if fi.IsDir() {
		return nil, fmt.Errorf("model artifact %s is a directory", path)
	}
	if err := l.initEnvironment(); err != nil {
		return nil, err
	}

	inputs, outputs, err := ort.GetInputOutputInfo(path)
	if err != nil {
		return nil, fmt.Errorf("read model io info: %w", err)
	}
	in, err := pickIO(inputs, l.InputName, "input")
	if err != nil {
		return nil, err
	}
	out, err := pickIO(outputs, l.OutputName, "output")
	if err != nil {
		return nil, err
	}
	if err := checkInputShape(in, inputShape); err != nil {
		return nil, err
	}
	outShape, err := outputShape(out)
	if err != nil {
		return nil, err
	}
	width := int(outShape[len(outShape)-1])

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("session options: %w", err)
	}
	defer opts.Destroy()
	if l.IntraOpThreads > 0 {
		if err := opts.SetIntraOpNumThreads(l.IntraOpThreads); err != nil {
			return nil, fmt.Errorf("set intra-op threads: %w", err)
		}
	}
	// A dynamic session binds tensors per Run call, so concurrent requests
	// never share input or output buffers.
	session, err := ort.NewDynamicAdvancedSession(path, []string{in.Name}, []string{out.Name}, opts)
	if err != nil {
		return nil, fmt.Errorf("create onnx session: %w", err)
	}
	return &onnxModel{
		session:  session,
		outShape: outShape,
		info: types.ModelInfo{
			Path:        path,
			InputName:   in.Name,
			OutputName:  out.Name,
			InputShape:  append([]int64(nil), in.Dimensions...),
			OutputWidth: width,
		},
	}, nil
}

func (l *ONNXLoader) initEnvironment() error {
	if ort.IsInitialized() {
		return nil
	}
	if l.LibraryPath != "" {
		ort.SetSharedLibraryPath(l.LibraryPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return fmt.Errorf("initialize onnx runtime: %w", err)
	}
	return nil
}

func pickIO(infos []ort.InputOutputInfo, name, kind string) (ort.InputOutputInfo, error) {
	if len(infos) == 0 {
		return ort.InputOutputInfo{}, fmt.Errorf("model declares no %s", kind)
	}
	if name == "" {
		return infos[0], nil
	}
	for _, info := range infos {
		if info.Name == name {
			return info, nil
		}
	}
	return ort.InputOutputInfo{}, fmt.Errorf("model has no %s named %q", kind, name)
}

// checkInputShape accepts dynamic (non-positive) dims and rejects any fixed
// dim that disagrees with the tensor the classifier will feed.
func checkInputShape(in ort.InputOutputInfo, want []int64) error {
	if in.DataType != ort.TensorElementDataTypeFloat {
		return fmt.Errorf("input %q has element type %v, want float32", in.Name, in.DataType)
	}
	if len(in.Dimensions) != len(want) {
		return fmt.Errorf("input %q has shape %v, want rank %d", in.Name, in.Dimensions, len(want))
	}
	for i, d := range in.Dimensions {
		if d > 0 && d != want[i] {
			return fmt.Errorf("input %q has shape %v, incompatible with %v", in.Name, in.Dimensions, want)
		}
	}
	return nil
}

// outputShape fixes dynamic dims of the probability output for a batch of
// one. The class dimension must be static: outputs are preallocated per call.
func outputShape(out ort.InputOutputInfo) (ort.Shape, error) {
	if out.DataType != ort.TensorElementDataTypeFloat {
		return nil, fmt.Errorf("output %q has element type %v, want float32", out.Name, out.DataType)
	}
	dims := out.Dimensions
	if len(dims) == 0 || dims[len(dims)-1] <= 0 {
		return nil, fmt.Errorf("output %q has shape %v, want a fixed class dimension", out.Name, dims)
	}
	shape := make(ort.Shape, len(dims))
	for i, d := range dims {
		if d <= 0 {
			d = 1
		}
		shape[i] = d
	}
	return shape, nil
}

type onnxModel struct {
	session  *ort.DynamicAdvancedSession
	outShape ort.Shape
	info     types.ModelInfo
}

func (m *onnxModel) Info() types.ModelInfo { return m.info }

// Predict implements Model. The forward pass is not interruptible; ctx is
// accepted for interface symmetry only.
func (m *onnxModel) Predict(_ context.Context, input imageproc.Tensor) ([]float32, error) {
	in, err := ort.NewTensor(ort.NewShape(input.Shape...), input.Data)
	if err != nil {
		return nil, fmt.Errorf("input tensor: %w", err)
	}
	defer in.Destroy()

	out, err := ort.NewEmptyTensor[float32](append(ort.Shape(nil), m.outShape...))
	if err != nil {
		return nil, fmt.Errorf("output tensor: %w", err)
	}
	defer out.Destroy()

	if err := m.session.Run([]ort.ArbitraryTensor{in}, []ort.ArbitraryTensor{out}); err != nil {
		return nil, err
	}
	// copy out of runtime-owned memory before the tensor is destroyed
	return append([]float32(nil), out.GetData()...), nil
}

func (m *onnxModel) Close() error {
	if m.session == nil {
		return nil
	}
	err := m.session.Destroy()
	m.session = nil
	return err
}
