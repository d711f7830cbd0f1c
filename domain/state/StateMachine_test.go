package state_test

import (
	"inventech/domain/state"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("StateMachine", func() {
	var (
		stateMachine *state.StateMachine
	)

	BeforeEach(func() {
		//              OPEN          IN_PROGRESS   CONCLUDED     CANCELLED
		// OPEN           -             V (start)     X             V (cancel)
		// IN_PROGRESS    X             -             V (conclude)  X
		// CONCLUDED      X             X             -             X
		// CANCELLED      X             X             X             -
		stateMachine = state.NewStateMachine(
			[]state.State{
				{Name: "OPEN", Category: state.InBacklog},
				{Name: "IN_PROGRESS", Category: state.InProcess},
				{Name: "CONCLUDED", Category: state.Done},
				{Name: "CANCELLED", Category: state.Rejected},
			},
			[]state.Transition{
				{Name: "start", From: "OPEN", To: "IN_PROGRESS"},
				{Name: "cancel", From: "OPEN", To: "CANCELLED"},
				{Name: "conclude", From: "IN_PROGRESS", To: "CONCLUDED"},
			})
	})

	Describe("AvailableTransitions", func() {
		It("should return transitions leaving a given state", func() {
			Ω(stateMachine.AvailableTransitions("OPEN", "")).Should(Equal([]state.Transition{
				{Name: "start", From: "OPEN", To: "IN_PROGRESS"},
				{Name: "cancel", From: "OPEN", To: "CANCELLED"},
			}))

			Ω(stateMachine.AvailableTransitions("IN_PROGRESS", "")).Should(Equal([]state.Transition{
				{Name: "conclude", From: "IN_PROGRESS", To: "CONCLUDED"},
			}))

			Ω(len(stateMachine.AvailableTransitions("CONCLUDED", ""))).Should(Equal(0))
			Ω(len(stateMachine.AvailableTransitions("CANCELLED", ""))).Should(Equal(0))
			Ω(len(stateMachine.AvailableTransitions("UNKNOWN", ""))).Should(Equal(0))
		})

		It("should be able to match both endpoints", func() {
			Ω(stateMachine.AvailableTransitions("OPEN", "CANCELLED")).Should(Equal([]state.Transition{
				{Name: "cancel", From: "OPEN", To: "CANCELLED"},
			}))
			Ω(len(stateMachine.AvailableTransitions("IN_PROGRESS", "CANCELLED"))).Should(Equal(0))
		})
	})

	Describe("FindState", func() {
		It("should find states by name", func() {
			s, found := stateMachine.FindState("IN_PROGRESS")
			Expect(found).To(BeTrue())
			Expect(s).To(Equal(state.State{Name: "IN_PROGRESS", Category: state.InProcess}))

			_, found = stateMachine.FindState("MISSING")
			Expect(found).To(BeFalse())
		})
	})

	Describe("Terminal", func() {
		It("should report terminal states", func() {
			Expect(stateMachine.Terminal("CONCLUDED")).To(BeTrue())
			Expect(stateMachine.Terminal("CANCELLED")).To(BeTrue())
			Expect(stateMachine.Terminal("OPEN")).To(BeFalse())
			Expect(stateMachine.Terminal("IN_PROGRESS")).To(BeFalse())
		})
	})
})
