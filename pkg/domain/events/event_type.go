package events

// Kind is the explicit tag of every record the engines can produce.
type Kind string

// Record kinds
const (
	KindAccountCreationConfirmed Kind = "AccountCreation.Confirmed"
	KindAccountCreationFailed    Kind = "AccountCreation.Failed"
	KindMoneyTransferConfirmed   Kind = "MoneyTransfer.Confirmed"
	KindMoneyTransferFailed      Kind = "MoneyTransfer.Failed"
	KindBalanceChanged           Kind = "Balance.Changed"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Channel is a logical output channel a record is routed to.
type Channel int

const (
	ChannelUnknown Channel = iota
	ChannelCreationFeedback
	ChannelTransferFeedback
	ChannelBalanceChange
)

// String returns the string representation of the channel.
func (c Channel) String() string {
	switch c {
	case ChannelCreationFeedback:
		return "creation-feedback"
	case ChannelTransferFeedback:
		return "transfer-feedback"
	case ChannelBalanceChange:
		return "balance-change"
	default:
		return "unknown"
	}
}

// Channel classifies the kind onto its output channel.
func (k Kind) Channel() Channel {
	switch k {
	case KindAccountCreationConfirmed, KindAccountCreationFailed:
		return ChannelCreationFeedback
	case KindMoneyTransferConfirmed, KindMoneyTransferFailed:
		return ChannelTransferFeedback
	case KindBalanceChanged:
		return ChannelBalanceChange
	default:
		return ChannelUnknown
	}
}

// IsFeedback reports whether the kind acknowledges a command to its originator.
func (k Kind) IsFeedback() bool {
	c := k.Channel()
	return c == ChannelCreationFeedback || c == ChannelTransferFeedback
}
