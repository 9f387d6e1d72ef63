package packet

import "fmt"

// ReasonCode is a single-byte MQTT v5 reason code (or v3.1.1 CONNACK return
// code) that also satisfies the error interface, so it can be returned or
// compared directly against the catalogue below.
//
// Reference: MQTT v3.1.1 3.2.2.3 CONNACK Return code; MQTT v5.0 2.4 Reason
// Code, 3.2.2.2 CONNACK Reason Code, and section 4.13 Handling errors.
type ReasonCode struct {
	Code   uint8
	Reason string
}

func (rc ReasonCode) Error() string {
	return fmt.Sprintf("%#02x: %s", rc.Code, rc.Reason)
}

// v3.1.1 CONNACK return codes.
var (
	Code3UnsupportedProtocolVersion = ReasonCode{Code: 0x01, Reason: "unsupported protocol version"}
	Code3ClientIdentifierNotValid   = ReasonCode{Code: 0x02, Reason: "client identifier not valid"}
	Code3ServerUnavailable          = ReasonCode{Code: 0x03, Reason: "server unavailable"}
	Code3BadUsernameOrPassword      = ReasonCode{Code: 0x04, Reason: "malformed username or password"}
	Code3NotAuthorized              = ReasonCode{Code: 0x05, Reason: "not authorized"}
)

// v5 success-family codes (below 0x80), shared across several packet kinds
// with a context-dependent meaning.
var (
	CodeSuccess              = ReasonCode{Code: 0x00, Reason: "success"}
	CodeNormalDisconnection  = ReasonCode{Code: 0x00, Reason: "normal disconnection"}
	CodeGrantedQoS0          = ReasonCode{Code: 0x00, Reason: "granted qos 0"}
	CodeGrantedQoS1          = ReasonCode{Code: 0x01, Reason: "granted qos 1"}
	CodeGrantedQoS2          = ReasonCode{Code: 0x02, Reason: "granted qos 2"}
	CodeDisconnectWillMsg    = ReasonCode{Code: 0x04, Reason: "disconnect with will message"}
	CodeNoMatchingSubs       = ReasonCode{Code: 0x10, Reason: "no matching subscribers"}
	CodeNoSubscriptionExists = ReasonCode{Code: 0x11, Reason: "no subscription existed"}
	CodeContinueAuth         = ReasonCode{Code: 0x18, Reason: "continue authentication"}
	CodeReAuthenticate       = ReasonCode{Code: 0x19, Reason: "re-authenticate"}
)

// v5 error codes, 0x80 and above, shared across CONNACK, PUBACK, PUBREC,
// PUBREL, PUBCOMP, SUBACK, UNSUBACK, DISCONNECT and AUTH as applicable.
var (
	CodeUnspecifiedError                     = ReasonCode{Code: 0x80, Reason: "unspecified error"}
	CodeMalformedPacket                      = ReasonCode{Code: 0x81, Reason: "malformed packet"}
	CodeProtocolError                        = ReasonCode{Code: 0x82, Reason: "protocol error"}
	CodeImplementationSpecificError          = ReasonCode{Code: 0x83, Reason: "implementation specific error"}
	CodeUnsupportedProtocolVersion           = ReasonCode{Code: 0x84, Reason: "unsupported protocol version"}
	CodeClientIdentifierNotValid             = ReasonCode{Code: 0x85, Reason: "client identifier not valid"}
	CodeBadUsernameOrPassword                = ReasonCode{Code: 0x86, Reason: "bad username or password"}
	CodeNotAuthorized                        = ReasonCode{Code: 0x87, Reason: "not authorized"}
	CodeServerUnavailable                    = ReasonCode{Code: 0x88, Reason: "server unavailable"}
	CodeServerBusy                           = ReasonCode{Code: 0x89, Reason: "server busy"}
	CodeBanned                               = ReasonCode{Code: 0x8A, Reason: "banned"}
	CodeServerShuttingDown                   = ReasonCode{Code: 0x8B, Reason: "server shutting down"}
	CodeBadAuthenticationMethod              = ReasonCode{Code: 0x8C, Reason: "bad authentication method"}
	CodeKeepAliveTimeout                     = ReasonCode{Code: 0x8D, Reason: "keep alive timeout"}
	CodeSessionTakenOver                     = ReasonCode{Code: 0x8E, Reason: "session taken over"}
	CodeTopicFilterInvalid                   = ReasonCode{Code: 0x8F, Reason: "topic filter invalid"}
	CodeTopicNameInvalid                     = ReasonCode{Code: 0x90, Reason: "topic name invalid"}
	CodePacketIdentifierInUse                = ReasonCode{Code: 0x91, Reason: "packet identifier in use"}
	CodePacketIdentifierNotFound             = ReasonCode{Code: 0x92, Reason: "packet identifier not found"}
	CodeReceiveMaximumExceeded               = ReasonCode{Code: 0x93, Reason: "receive maximum exceeded"}
	CodeTopicAliasInvalid                    = ReasonCode{Code: 0x94, Reason: "topic alias invalid"}
	CodePacketTooLarge                       = ReasonCode{Code: 0x95, Reason: "packet too large"}
	CodeMessageRateTooHigh                   = ReasonCode{Code: 0x96, Reason: "message rate too high"}
	CodeQuotaExceeded                        = ReasonCode{Code: 0x97, Reason: "quota exceeded"}
	CodeAdministrativeAction                 = ReasonCode{Code: 0x98, Reason: "administrative action"}
	CodePayloadFormatInvalid                 = ReasonCode{Code: 0x99, Reason: "payload format invalid"}
	CodeRetainNotSupported                   = ReasonCode{Code: 0x9A, Reason: "retain not supported"}
	CodeQoSNotSupported                      = ReasonCode{Code: 0x9B, Reason: "qos not supported"}
	CodeUseAnotherServer                     = ReasonCode{Code: 0x9C, Reason: "use another server"}
	CodeServerMoved                          = ReasonCode{Code: 0x9D, Reason: "server moved"}
	CodeSharedSubscriptionsNotSupported      = ReasonCode{Code: 0x9E, Reason: "shared subscriptions not supported"}
	CodeConnectionRateExceeded               = ReasonCode{Code: 0x9F, Reason: "connection rate exceeded"}
	CodeMaximumConnectTime                   = ReasonCode{Code: 0xA0, Reason: "maximum connect time"}
	CodeSubscriptionIdentifiersNotSupported  = ReasonCode{Code: 0xA1, Reason: "subscription identifiers not supported"}
	CodeWildcardSubscriptionsNotSupported    = ReasonCode{Code: 0xA2, Reason: "wildcard subscriptions not supported"}
)
