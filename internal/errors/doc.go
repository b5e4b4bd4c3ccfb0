// Package errors provides the structured error type used across lumina-api.
//
// Every layer returns *Error values carrying a Code, a user-facing message and
// optional metadata. Codes map onto gRPC status codes for the GameService and
// onto HTTP status codes for the JSON API.
//
// # Usage
//
//	err := errors.NotFound("session not found").WithMeta("session_id", id)
//	err := errors.FailedPreconditionf("cannot roll while %s", suspension)
//
// Wrapping keeps the original code:
//
//	if err := repo.Append(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to record log entry")
//	}
//
// Config validation collects every missing dependency before failing:
//
//	vb := errors.NewValidationBuilder()
//	if c.Narrative == nil {
//	    vb.RequiredField("Narrative")
//	}
//	return vb.Build()
//
// # Layer guidelines
//
// Repositories return NotFound / InvalidArgument and wrap driver errors.
// Orchestrators validate input (InvalidArgument) and reject commands that the
// current session state does not accept (FailedPrecondition).
// Handlers convert with ToGRPCError or Code.HTTPStatus.
package errors
