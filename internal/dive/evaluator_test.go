package dive_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/san-kum/eggdive/internal/dive"
	"github.com/san-kum/eggdive/internal/dynamo"
	"github.com/san-kum/eggdive/internal/integrators"
)

var _ = Describe("DiveDepth", func() {
	var (
		env    dive.Environment
		smooth dive.Params
	)

	BeforeEach(func() {
		env = dive.DefaultEnvironment()
		smooth = dive.Params{Height: 0.05, Width: 0.05, GrooveAngle: 0, GrooveCount: 1, EggDensity: 300, GrooveDepth: 0}
	})

	Context("with a valid smooth egg", func() {
		It("returns a positive finite depth", func() {
			d := dive.DiveDepth(smooth, env)
			Expect(math.IsNaN(d) || math.IsInf(d, 0)).To(BeFalse())
			Expect(d).To(BeNumerically(">", 0))
			Expect(d).To(BeNumerically("<", env.Step.Total*1.0))
		})

		It("matches the maximum of the integrated trajectory", func() {
			tr, err := integrators.Integrate(smooth.Shape(), env.Fluid, env.Step)
			Expect(err).NotTo(HaveOccurred())
			Expect(dive.DiveDepth(smooth, env)).To(Equal(tr.MaxY() - smooth.Height))
		})

		It("is deterministic", func() {
			Expect(dive.DiveDepth(smooth, env)).To(Equal(dive.DiveDepth(smooth, env)))
		})
	})

	Context("with the grooved reference design", func() {
		It("returns a finite, bounded value without panicking", func() {
			p := dive.Params{Height: 0.05, Width: 0.05, GrooveAngle: dynamo.Tau / 8, GrooveCount: 8, EggDensity: 300, GrooveDepth: 0.001}
			env.Fluid.ContactAngle = dynamo.Tau / 20

			var d float64
			Expect(func() { d = dive.DiveDepth(p, env) }).NotTo(Panic())
			Expect(math.IsNaN(d) || math.IsInf(d, 0)).To(BeFalse())
			Expect(math.Abs(d)).To(BeNumerically("<", env.Step.Total*10))
		})
	})

	DescribeTable("scores zero for rejected or broken configurations",
		func(mutate func(p *dive.Params, env *dive.Environment)) {
			mutate(&smooth, &env)
			Expect(dive.DiveDepth(smooth, env)).To(BeZero())
		},
		Entry("too many grooves", func(p *dive.Params, _ *dive.Environment) { p.GrooveCount = 25 }),
		Entry("zero height", func(p *dive.Params, _ *dive.Environment) { p.Height = 0 }),
		Entry("NaN width", func(p *dive.Params, _ *dive.Environment) { p.Width = math.NaN() }),
		Entry("egg denser than fluid", func(p *dive.Params, _ *dive.Environment) { p.EggDensity = 2000 }),
		Entry("zero drag, degenerate solve", func(_ *dive.Params, env *dive.Environment) { env.Fluid.Drag = 0 }),
		Entry("hydrophobic egg rises out of the domain", func(_ *dive.Params, env *dive.Environment) {
			env.Fluid.ContactAngle = dynamo.Tau / 2
		}),
		Entry("unbounded step count", func(_ *dive.Params, env *dive.Environment) { env.Step.Dt = 1e-12 }),
		Entry("negative total time", func(_ *dive.Params, env *dive.Environment) { env.Step.Total = -1 }),
	)
})

var _ = Describe("DepthWrapper", func() {
	env := dive.DefaultEnvironment()

	It("negates DiveDepth", func() {
		vec := []float64{0.05, 0.05, 0, 1, 300, 0}
		p, err := dive.ParamsFromVector(vec)
		Expect(err).NotTo(HaveOccurred())
		Expect(dive.DepthWrapper(vec, env)).To(Equal(-dive.DiveDepth(p, env)))
		Expect(dive.DepthWrapper(vec, env)).To(BeNumerically("<", 0))
	})

	It("scores malformed vectors as zero", func() {
		Expect(dive.DepthWrapper([]float64{0.05, 0.05}, env)).To(BeZero())
		Expect(dive.DepthWrapper(nil, env)).To(BeZero())
	})

	It("scores out of bounds vectors as zero", func() {
		Expect(dive.DepthWrapper([]float64{0.05, 0.05, 0, 25, 300, 0}, env)).To(BeZero())
	})
})

var _ = Describe("EvaluateBatch", func() {
	It("agrees with sequential evaluation", func() {
		env := dive.DefaultEnvironment()
		env.Step.Total = 0.5
		vectors := [][]float64{
			{0.05, 0.05, 0, 1, 300, 0},
			{0.1, 0.08, 0, 1, 500, 0},
			{0.05, 0.05, 0, 25, 300, 0},
			{0.2, 0.1, 0.3, 6, 800, 0},
			{1, 2, 3},
		}

		got := dive.EvaluateBatch(vectors, env)
		Expect(got).To(HaveLen(len(vectors)))
		for i, v := range vectors[:4] {
			p, _ := dive.ParamsFromVector(v)
			Expect(got[i]).To(Equal(dive.DiveDepth(p, env)), "vector %d", i)
		}
		Expect(got[2]).To(BeZero())
		Expect(got[4]).To(BeZero())
	})
})

var _ = Describe("Evaluator", func() {
	It("logs absorbed errors at debug level", func() {
		logger, hook := test.NewNullLogger()
		logger.SetLevel(logrus.DebugLevel)
		ev := dive.New(logger)

		p := dive.Params{Height: 0.05, Width: 0.05, GrooveCount: 25, EggDensity: 300}
		Expect(ev.DiveDepth(p, dive.DefaultEnvironment())).To(BeZero())

		entry := hook.LastEntry()
		Expect(entry).NotTo(BeNil())
		Expect(entry.Level).To(Equal(logrus.DebugLevel))
		Expect(entry.Message).To(Equal("parameters rejected"))
		Expect(entry.Data).To(HaveKeyWithValue("n", 25.0))
	})

	It("can score with an alternative stepper", func() {
		ev := &dive.Evaluator{Stepper: integrators.NewVerlet()}
		p := dive.Params{Height: 0.05, Width: 0.05, GrooveCount: 1, EggDensity: 300}
		Expect(ev.DiveDepth(p, dive.DefaultEnvironment())).To(BeNumerically(">", 0))
	})

	It("reports why a design scored zero", func() {
		ev := dive.New(nil)
		env := dive.DefaultEnvironment()

		_, err := ev.Evaluate(dive.Params{Height: 0.05, Width: 0.05, GrooveCount: 25, EggDensity: 300}, env)
		var be *dynamo.BoundsError
		Expect(errors.As(err, &be)).To(BeTrue())
		Expect(be.Name).To(Equal("groove_count"))

		env.Fluid.Drag = 0
		d, err := ev.Evaluate(dive.Params{Height: 0.05, Width: 0.05, GrooveCount: 1, EggDensity: 300}, env)
		Expect(d).To(BeZero())
		Expect(err).To(MatchError(dynamo.ErrDegenerate))
	})
})
